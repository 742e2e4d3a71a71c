package genai

import (
	"strings"
	"testing"
)

func TestLanguageSupported(t *testing.T) {
	for _, lang := range []string{"python", "go", "cpp", "verilog"} {
		if !LanguageSupported(lang) {
			t.Errorf("LanguageSupported(%q) = false, want true", lang)
		}
	}
	for _, lang := range []string{"", "brainfuck", "Python"} {
		if LanguageSupported(lang) {
			t.Errorf("LanguageSupported(%q) = true, want false", lang)
		}
	}
}

func TestGenerateCodePrompt(t *testing.T) {
	prompt, instruction := GenerateCodePrompt("reverse a string", "python")

	if !strings.Contains(prompt, "reverse a string") {
		t.Error("prompt should contain the problem description")
	}
	if !strings.Contains(prompt, "Python") || !strings.Contains(instruction, "Python") {
		t.Error("prompt and instruction should name the language")
	}
}

func TestOutputPrompt_EmbedsCodeAndTime(t *testing.T) {
	prompt, instruction := OutputPrompt("print(1)", "python")

	if !strings.Contains(prompt, "print(1)") {
		t.Error("prompt should contain the code")
	}
	if !strings.Contains(prompt, "UTC time zone") {
		t.Error("prompt should carry a UTC time reference")
	}
	if !strings.Contains(instruction, "Python") {
		t.Error("instruction should name the language")
	}
}

func TestRefactorPrompt_OptionalProblemDescription(t *testing.T) {
	withProblem, _ := RefactorPrompt("x=1", "python", "SyntaxError", "sum a list")
	if !strings.Contains(withProblem, "sum a list") {
		t.Error("prompt should include the problem description when given")
	}

	without, _ := RefactorPrompt("x=1", "python", "SyntaxError", "")
	if strings.Contains(without, "solves this problem") {
		t.Error("prompt should not reference a problem when none was given")
	}
	if !strings.Contains(without, "SyntaxError") {
		t.Error("prompt should include the observed output")
	}
}
