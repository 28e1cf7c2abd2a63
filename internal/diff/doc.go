/*
Package diff computes and renders line diffs between two texts.

# Pipeline

	edits := diff.Lines(a, b)                    // minimal edit script
	hunks := diff.Group(edits, diff.DefaultContext) // hunks with 3 lines of context
	err := diff.Write(os.Stdout, hunks, diff.Plain{})

diff.Text(a, b, renderer) runs all three steps into a string.

# Edit Script

Lines splits both inputs after every newline and aligns them with a longest
common subsequence. Common leading and trailing lines are matched before the
table is built. Ties between equally short scripts are broken by comparing the
two competing lines, so swapping the inputs swaps Insert and Delete and
changes nothing else.

# Inline Changes

Within a run of changed lines, deleted lines are printed before inserted lines
and the i-th deleted line is paired with the i-th inserted line. Each pair is
diffed character by character (diffmatchpatch with semantic cleanup) and the
differing spans are marked as emphasized.

# Output Format

Every row is

	<old:4><new:4> |<sign><content>

where the numbers are 1-based and left-aligned, blank when the line does not
exist on that side, and sign is "-", "+" or a space. Hunks are separated by a
rule of 80 dashes. Identical inputs render nothing.

# Renderers

  - Plain marks emphasis as [-removed-] and {+added+}
  - NoMarks prints content only
  - Terminal colors rows with lipgloss and underlines emphasized spans
*/
package diff
