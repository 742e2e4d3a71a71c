package genai

import (
	"fmt"
	"regexp"
)

// Web project generation works one layer at a time: HTML first, then CSS
// styled against that HTML, then JS wired to both. The prompts enforce the
// split so each response contains exactly one layer.

// WebTypeSupported reports whether t names one of the web layers.
func WebTypeSupported(t string) bool {
	return t == "html" || t == "css" || t == "js"
}

// fencedCode matches a markdown code fence with an optional language tag.
var fencedCode = regexp.MustCompile("(?s)```(?:\\w+\\n)?(.*?)```")

// ExtractFencedCode returns the contents of the first code fence in s, or
// fallback when the model did not fence its answer.
func ExtractFencedCode(s, fallback string) string {
	if m := fencedCode.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return fallback
}

// GenerateHTMLPrompt builds the prompt for the HTML layer of a project.
func GenerateHTMLPrompt(projectDescription string) (prompt, instruction string) {
	prompt = fmt.Sprintf(
		"Generate HTML for the following project, suitable for placement directly "+
			"inside the <body> tag.\n\n%s\n\n"+
			"Exclude <html>, <head>, and <body> tags. No inline JavaScript, no inline "+
			"styles; the markup is purely structural. Add only the ids and class names "+
			"later CSS and JS will need, in a consistent naming convention. Make it "+
			"responsive, use semantic elements with proper heading order, and give every "+
			"<img> an alt attribute with a placeholder source such as https://placehold.co. "+
			"Include CDN links (jsDelivr, cdnjs, or unpkg, without integrity attributes) "+
			"only for libraries the project clearly requires, at the bottom of the markup. "+
			"Do not use jQuery unless the project asks for it.\n"+
			"Return only the code in plain text, without markdown.\n\n"+
			"Project description: %s",
		utcTimeReference(), projectDescription,
	)
	instruction = "You are a deterministic HTML generator. Output exactly the valid, " +
		"well-structured, semantic HTML that fulfills the given specification, " +
		"nothing more and nothing less."
	return prompt, instruction
}

// GenerateCSSPrompt builds the prompt for styling previously generated HTML.
func GenerateCSSPrompt(htmlContent, projectDescription string) (prompt, instruction string) {
	prompt = fmt.Sprintf(
		"Generate CSS to style the following HTML.\n\n%s\n\n"+
			"Style through the ids and classes already present in the markup; avoid "+
			"element selectors unless necessary. Use flexbox or grid for layout, media "+
			"queries for responsiveness, CSS custom properties for colors and spacing, "+
			"and rem or em units for sizes. Keep specificity low and avoid !important. "+
			"If a styling framework is in use, rely on its utility classes instead of "+
			"custom CSS and reference it only in a comment.\n"+
			"Return only the code in plain text, without markdown.\n\n"+
			"%s\n\nHTML:\n```html\n%s\n```",
		utcTimeReference(), projectDescription, htmlContent,
	)
	instruction = "You are a deterministic CSS generator. Output exactly the valid, " +
		"modern CSS that implements the described styles, nothing more and nothing less."
	return prompt, instruction
}

// GenerateJSPrompt builds the prompt for the interactivity layer.
func GenerateJSPrompt(htmlContent, cssContent, projectDescription string) (prompt, instruction string) {
	prompt = fmt.Sprintf(
		"Generate JavaScript to add interactivity to the following HTML, returning "+
			"only JavaScript without HTML or CSS.\n\n%s\n\n"+
			"Select elements through the existing ids and classes and attach behavior "+
			"with addEventListener, never inline handlers. Use const and let, keep the "+
			"code modular, handle errors with try/catch around async work, use fetch for "+
			"any API access, and clean up listeners on removed elements.\n"+
			"Return only the code in plain text, without markdown.\n\n"+
			"%s\n\nHTML:\n```html\n%s\n```\n\nCSS:\n```css\n%s\n```",
		utcTimeReference(), projectDescription, htmlContent, cssContent,
	)
	instruction = "You are a deterministic JavaScript generator. Output exactly the " +
		"valid, functionally correct JavaScript that implements the described behavior, " +
		"nothing more and nothing less."
	return prompt, instruction
}

func webRefactorInstruction(layer string) string {
	return fmt.Sprintf(
		"You are a deterministic %s code refactoring engine. Given valid code, output "+
			"a refactored version that preserves its behavior and follows best practices. "+
			"Given invalid code, output a precise compiler-style error message and halt.",
		layer,
	)
}

// RefactorHTMLPrompt builds the prompt for refactoring the HTML layer.
// problemDescription is optional; when present the refactor is steered
// toward solving it.
func RefactorHTMLPrompt(htmlContent, problemDescription string) (prompt, instruction string) {
	goal := "Improve structure and semantics without changing what the page shows."
	if problemDescription != "" {
		goal = "Problem statement:\n\n" + problemDescription
	}
	prompt = fmt.Sprintf(
		"Refactor this HTML, suitable for placement directly inside the <body> tag. "+
			"Keep any styling framework already in use and improve its usage rather than "+
			"removing it. No inline JavaScript or inline styles; keep the markup purely "+
			"structural with consistent id and class naming, semantic elements, and alt "+
			"attributes on images. Keep only the CDN links the page actually needs, at "+
			"the bottom of the markup.\n\n%s\n\nHTML:\n```html\n%s\n```",
		goal, htmlContent,
	)
	return prompt, webRefactorInstruction("html")
}

// RefactorCSSPrompt builds the prompt for refactoring the CSS layer against
// its HTML.
func RefactorCSSPrompt(htmlContent, cssContent, problemDescription string) (prompt, instruction string) {
	goal := "Improve the styles without changing the rendered design."
	if problemDescription != "" {
		goal = "Problem statement:\n\n" + problemDescription
	}
	prompt = fmt.Sprintf(
		"Refactor this CSS against the HTML below. If a styling framework is in use, "+
			"drop custom CSS it makes redundant and reference the framework in a comment. "+
			"Remove @apply, keep the styles responsive, keep specificity low.\n\n"+
			"%s\n\nHTML:\n```html\n%s\n```\n\nCSS:\n```css\n%s\n```",
		goal, htmlContent, cssContent,
	)
	return prompt, webRefactorInstruction("css")
}

// RefactorJSPrompt builds the prompt for refactoring the JS layer against its
// HTML and CSS.
func RefactorJSPrompt(htmlContent, cssContent, jsContent, problemDescription string) (prompt, instruction string) {
	goal := "Improve the code without changing the page's behavior."
	if problemDescription != "" {
		goal = "Problem statement:\n\n" + problemDescription
	}
	prompt = fmt.Sprintf(
		"Refactor this JavaScript against the HTML and CSS below, returning only "+
			"JavaScript without HTML or CSS.\n\n%s\n\nHTML:\n```html\n%s\n```\n\n"+
			"CSS:\n```css\n%s\n```\n\nJAVASCRIPT:\n```js\n%s\n```",
		goal, htmlContent, cssContent, jsContent,
	)
	return prompt, webRefactorInstruction("js")
}
