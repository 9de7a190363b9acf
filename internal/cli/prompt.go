package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"qbank/internal/ingest"
)

// maxShownDuplicates bounds how many duplicates the confirmation
// prompt lists before collapsing the rest into a count.
const maxShownDuplicates = 5

// confirm prints the prompt and reads one line. Only an explicit "y"
// or "yes" accepts; anything else, including EOF, declines.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// confirmDuplicates returns the interactive decision function for the
// ingest command: list the duplicates, then ask whether to skip them
// and commit the rest of the document.
func confirmDuplicates(in io.Reader, out io.Writer, color bool) ingest.DecisionFunc {
	return func(dups []ingest.Duplicate) bool {
		fmt.Fprint(out, renderDuplicates(dups, color))
		return confirm(in, out, fmt.Sprintf("Skip %d duplicate(s) and continue? (y/n): ", len(dups)))
	}
}
