package texting

import "testing"

func TestExtractCodeFencedBlock(t *testing.T) {
	response := "Here is the function you asked for:\n```python\ndef add(a, b):\n    return a + b\n```\nNote that it handles integers only."

	got := ExtractCode(response)
	want := "def add(a, b):\n    return a + b"

	if got != want {
		t.Errorf("ExtractCode() = %q, want %q", got, want)
	}
}

func TestExtractCodePicksLargestBlock(t *testing.T) {
	response := "```\nx = 1\n```\nAnd the full version:\n```python\ndef add(a, b):\n    return a + b\n\nresult = add(1, 2)\n```"

	got := ExtractCode(response)

	if got == "x = 1" {
		t.Fatal("ExtractCode() picked the smaller block")
	}
	if want := "def add(a, b):\n    return a + b\n\nresult = add(1, 2)"; got != want {
		t.Errorf("ExtractCode() = %q, want %q", got, want)
	}
}

func TestExtractCodeStripsProse(t *testing.T) {
	response := "Here is the implementation:\nfunc add(a, b int) int {\n\treturn a + b\n}\nNote that overflow is not handled."

	got := ExtractCode(response)
	want := "func add(a, b int) int {\n\treturn a + b\n}"

	if got != want {
		t.Errorf("ExtractCode() = %q, want %q", got, want)
	}
}

func TestExtractCodeEmptyResponse(t *testing.T) {
	if got := ExtractCode(""); got != "" {
		t.Errorf("ExtractCode(\"\") = %q, want empty", got)
	}
}
