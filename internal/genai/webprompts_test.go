package genai

import (
	"strings"
	"testing"
)

func TestWebTypeSupported(t *testing.T) {
	for _, typ := range []string{"html", "css", "js"} {
		if !WebTypeSupported(typ) {
			t.Errorf("WebTypeSupported(%q) = false, want true", typ)
		}
	}
	for _, typ := range []string{"", "HTML", "php", "javascript"} {
		if WebTypeSupported(typ) {
			t.Errorf("WebTypeSupported(%q) = true, want false", typ)
		}
	}
}

func TestExtractFencedCode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback string
		want     string
	}{
		{
			name:  "fence with language tag",
			input: "```html\n<div></div>\n```",
			want:  "<div></div>\n",
		},
		{
			name:  "fence without language tag",
			input: "```\n<div></div>\n```",
			want:  "\n<div></div>\n",
		},
		{
			name:  "first fence wins",
			input: "```css\na{}\n```\ntext\n```css\nb{}\n```",
			want:  "a{}\n",
		},
		{
			name:     "no fence falls back",
			input:    "I refuse",
			fallback: "div{color:red}",
			want:     "div{color:red}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractFencedCode(tt.input, tt.fallback); got != tt.want {
				t.Errorf("ExtractFencedCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateWebPrompts_EmbedLayers(t *testing.T) {
	htmlPrompt, htmlInstr := GenerateHTMLPrompt("a landing page")
	if !strings.Contains(htmlPrompt, "a landing page") {
		t.Error("html prompt should contain the project description")
	}
	if !strings.Contains(htmlPrompt, "UTC time zone") {
		t.Error("html prompt should carry a UTC time reference")
	}
	if !strings.Contains(htmlInstr, "HTML generator") {
		t.Error("html instruction should name its role")
	}

	cssPrompt, _ := GenerateCSSPrompt("<div id=\"hero\"></div>", "a landing page")
	if !strings.Contains(cssPrompt, `<div id="hero"></div>`) {
		t.Error("css prompt should contain the html to style")
	}

	jsPrompt, _ := GenerateJSPrompt("<div></div>", "#hero{}", "a landing page")
	if !strings.Contains(jsPrompt, "<div></div>") || !strings.Contains(jsPrompt, "#hero{}") {
		t.Error("js prompt should contain both the html and the css")
	}
}

func TestRefactorWebPrompts_OptionalProblemStatement(t *testing.T) {
	withProblem, instr := RefactorHTMLPrompt("<div></div>", "add a nav bar")
	if !strings.Contains(withProblem, "add a nav bar") {
		t.Error("prompt should include the problem statement when given")
	}
	if !strings.Contains(instr, "html") {
		t.Error("instruction should name the layer")
	}

	without, _ := RefactorHTMLPrompt("<div></div>", "")
	if strings.Contains(without, "Problem statement") {
		t.Error("prompt should not reference a problem when none was given")
	}

	cssPrompt, _ := RefactorCSSPrompt("<div></div>", "div{}", "")
	if !strings.Contains(cssPrompt, "div{}") {
		t.Error("css prompt should include the css to refactor")
	}

	jsPrompt, _ := RefactorJSPrompt("<div></div>", "div{}", "var x=1", "use const")
	for _, want := range []string{"<div></div>", "div{}", "var x=1", "use const"} {
		if !strings.Contains(jsPrompt, want) {
			t.Errorf("js prompt should contain %q", want)
		}
	}
}
