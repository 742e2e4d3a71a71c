package genai

import (
	"fmt"
	"time"
)

// supportedLanguages is the set of languages the generation endpoints accept.
// This allow-list belongs to prompt construction only; the snippet store
// treats language as an opaque namespace tag.
var supportedLanguages = map[string]string{
	"python":     "Python",
	"javascript": "JavaScript",
	"typescript": "TypeScript",
	"go":         "Go",
	"rust":       "Rust",
	"java":       "Java",
	"c":          "C",
	"cpp":        "C++",
	"csharp":     "C#",
	"ruby":       "Ruby",
	"swift":      "Swift",
	"kotlin":     "Kotlin",
	"dart":       "Dart",
	"perl":       "Perl",
	"scala":      "Scala",
	"julia":      "Julia",
	"sql":        "SQL",
	"mongodb":    "MongoDB",
	"verilog":    "Verilog",
}

// LanguageSupported reports whether code generation knows the language tag.
func LanguageSupported(language string) bool {
	_, ok := supportedLanguages[language]
	return ok
}

func languageName(language string) string {
	if name, ok := supportedLanguages[language]; ok {
		return name
	}
	return language
}

// utcTimeReference anchors prompts that may need "current time" answers so
// the model does not invent one.
func utcTimeReference() string {
	return time.Now().UTC().Format("03:04:05 PM on January 02, 2006") + " UTC time zone"
}

// GenerateCodePrompt builds the prompt and system instruction for generating
// a solution to a problem description.
func GenerateCodePrompt(problemDescription, language string) (prompt, instruction string) {
	name := languageName(language)
	prompt = fmt.Sprintf(
		"Write a %s program that solves the following problem:\n\n%s\n\n"+
			"Return only the code, without markdown fences or commentary.",
		name, problemDescription,
	)
	instruction = fmt.Sprintf(
		"You are an expert %s developer. Produce clean, idiomatic, runnable %s code. "+
			"Output plain code only: no markdown, no explanations.",
		name, name,
	)
	return prompt, instruction
}

// OutputPrompt builds the prompt and system instruction for simulating the
// execution of a code snippet.
func OutputPrompt(code, language string) (prompt, instruction string) {
	name := languageName(language)
	prompt = fmt.Sprintf(
		"Analyze the following %s code:\n\n%s\n\n```%s```\n\n"+
			"Carefully examine the provided code line-by-line and character-by-character. "+
			"Focus on errors such as syntax or runtime issues. "+
			"Provide only plain text output. Do not use markdown.\n"+
			"If the snippet is a comment, do not execute the commented snippet.\n\n"+
			"If errors are found:\n"+
			"- Syntax errors: provide the most probable error message a %s toolchain would report.\n"+
			"- Runtime errors: provide a clear description.\n"+
			"- Only provide the error message, not the code or explanations.\n\n"+
			"If the code is error-free:\n"+
			"- If there is an infinite loop, show the first 20 iterations followed by \"...\".\n"+
			"- If the code uses randomness, show output with different values for each run.\n"+
			"- Otherwise, show the full output.\n\n"+
			"If the code is not valid %s, output: \"Language not supported.\"",
		name, utcTimeReference(), code, name, name,
	)
	instruction = fmt.Sprintf(
		"You simulate a %s toolchain. You print exactly what running the given program would print, "+
			"or the error it would fail with. Plain text only.",
		name,
	)
	return prompt, instruction
}

// RefactorPrompt builds the prompt and system instruction for refactoring a
// snippet. problemDescription is optional; when present the refactor is
// steered toward solving it.
func RefactorPrompt(code, language, output, problemDescription string) (prompt, instruction string) {
	name := languageName(language)
	if problemDescription != "" {
		prompt = fmt.Sprintf(
			"Refactor the following %s code so that it correctly solves this problem:\n\n%s\n\n"+
				"Code:\n```%s```\n\nObserved output:\n%s\n\n"+
				"Return only the refactored code, without markdown fences or commentary.",
			name, problemDescription, code, output,
		)
	} else {
		prompt = fmt.Sprintf(
			"Refactor the following %s code, fixing any errors visible in its output:\n\n"+
				"Code:\n```%s```\n\nObserved output:\n%s\n\n"+
				"Return only the refactored code, without markdown fences or commentary.",
			name, code, output,
		)
	}
	instruction = fmt.Sprintf(
		"You are an expert %s developer refactoring user code. Preserve behavior the user clearly "+
			"intended, fix what is broken, and output plain code only.",
		name,
	)
	return prompt, instruction
}
