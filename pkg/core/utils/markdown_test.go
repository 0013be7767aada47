package utils

import "testing"

func TestCleanMarkdownStripsFences(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"```markdown\n# Report\n```", "# Report"},
		{"```\n# Report\n```", "# Report"},
		{"  # Report  ", "# Report"},
		{"# Report", "# Report"},
	}
	for _, c := range cases {
		if got := CleanMarkdown(c.in); got != c.want {
			t.Errorf("CleanMarkdown(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidateMarkdown(t *testing.T) {
	if !ValidateMarkdown("# Reconciliation\n\n| a | b |\n|---|---|\n| 1 | 2 |\n") {
		t.Error("table document should validate")
	}
	if !ValidateMarkdown("") {
		t.Error("empty document still parses")
	}
}
