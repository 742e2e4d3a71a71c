package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sakif/tempshare/internal/apperror"
	"github.com/sakif/tempshare/internal/genai"
	"github.com/sakif/tempshare/internal/service"
)

// GenAIHandler streams model output for the generation endpoints. The
// generator may be nil when no API key is configured; the routes then answer
// 503 instead of being absent, so clients see a consistent surface.
type GenAIHandler struct {
	gen    genai.Generator
	logger *slog.Logger
}

// NewGenAIHandler creates a GenAIHandler. gen may be nil.
func NewGenAIHandler(gen genai.Generator, logger *slog.Logger) *GenAIHandler {
	return &GenAIHandler{gen: gen, logger: logger}
}

type generateCodeRequest struct {
	ProblemDescription string `json:"problem_description"`
	Language           string `json:"language"`
}

type outputRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

type refactorRequest struct {
	Code               string `json:"code"`
	Language           string `json:"language"`
	Output             string `json:"output"`
	ProblemDescription string `json:"problem_description"`
}

// HandleGenerate processes POST /generate-code.
func (h *GenAIHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProblemDescription == "" {
		writeError(w, apperror.ValidationFailed("problem_description", "problem description is required"))
		return
	}
	if !genai.LanguageSupported(req.Language) {
		writeError(w, apperror.ValidationFailed("language", "invalid or missing language"))
		return
	}

	prompt, instruction := genai.GenerateCodePrompt(req.ProblemDescription, req.Language)
	h.stream(w, r, prompt, instruction)
}

// HandleOutput processes POST /get-output: the model simulates running the
// snippet and the predicted output streams back as plain text.
func (h *GenAIHandler) HandleOutput(w http.ResponseWriter, r *http.Request) {
	var req outputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" || req.Language == "" {
		writeError(w, apperror.ValidationFailed("code", "missing code or language"))
		return
	}
	if !genai.LanguageSupported(req.Language) {
		writeError(w, apperror.ValidationFailed("language", "invalid or missing language"))
		return
	}
	if len(req.Code) > service.MaxCodeBytes {
		writeError(w, apperror.TooLarge("code", "code exceeds the 0.5 MB limit"))
		return
	}

	prompt, instruction := genai.OutputPrompt("\n\n"+req.Code+"\n\n", req.Language)
	h.stream(w, r, prompt, instruction)
}

// HandleRefactor processes POST /refactor-code.
func (h *GenAIHandler) HandleRefactor(w http.ResponseWriter, r *http.Request) {
	var req refactorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" || req.Language == "" {
		writeError(w, apperror.ValidationFailed("code", "missing code or language"))
		return
	}
	if !genai.LanguageSupported(req.Language) {
		writeError(w, apperror.ValidationFailed("language", "invalid or missing language"))
		return
	}
	if len(req.Code) > service.MaxCodeBytes {
		writeError(w, apperror.TooLarge("code", "code exceeds the 0.5 MB limit"))
		return
	}

	prompt, instruction := genai.RefactorPrompt(req.Code, req.Language, req.Output, req.ProblemDescription)
	h.stream(w, r, prompt, instruction)
}

type webGenerateRequest struct {
	Type        string `json:"type"`
	Prompt      string `json:"prompt"`
	HTMLContent string `json:"htmlContent"`
	CSSContent  string `json:"cssContent"`
}

// HandleWebGenerate processes POST /htmlcssjsgenerate-code. A web project is
// generated one layer at a time: the client asks for html, then css against
// that html, then js against both.
func (h *GenAIHandler) HandleWebGenerate(w http.ResponseWriter, r *http.Request) {
	var req webGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Prompt == "" {
		writeError(w, apperror.ValidationFailed("prompt", "project description is required"))
		return
	}
	if !genai.WebTypeSupported(req.Type) {
		writeError(w, apperror.ValidationFailed("type", "invalid or missing 'type' parameter"))
		return
	}

	var prompt, instruction string
	switch req.Type {
	case "html":
		prompt, instruction = genai.GenerateHTMLPrompt(req.Prompt)
	case "css":
		prompt, instruction = genai.GenerateCSSPrompt(req.HTMLContent, req.Prompt)
	case "js":
		prompt, instruction = genai.GenerateJSPrompt(req.HTMLContent, req.CSSContent, req.Prompt)
	}
	h.stream(w, r, prompt, instruction)
}

type webRefactorRequest struct {
	Type               string `json:"type"`
	HTML               string `json:"html"`
	CSS                string `json:"css"`
	JS                 string `json:"js"`
	ProblemDescription string `json:"problem_description"`
}

// HandleWebRefactor processes POST /htmlcssjsrefactor-code. Unlike the
// streamed generation routes it answers with JSON, one key per refactored
// layer, so the client can swap a single layer in place.
func (h *GenAIHandler) HandleWebRefactor(w http.ResponseWriter, r *http.Request) {
	var req webRefactorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid request body"))
		return
	}
	for field, content := range map[string]string{"html": req.HTML, "css": req.CSS, "js": req.JS} {
		if len(content) > service.MaxCodeBytes {
			writeError(w, apperror.TooLarge(field, field+" content exceeds the 0.5 MB limit"))
			return
		}
	}
	if req.Type == "" {
		writeError(w, apperror.ValidationFailed("type", "type is required"))
		return
	}
	if h.gen == nil {
		writeError(w, apperror.Unavailable("code generation is not configured"))
		return
	}

	problem := strings.TrimSpace(req.ProblemDescription)

	var prompt, instruction, key, fallback string
	switch {
	case req.Type == "html" && req.HTML != "":
		prompt, instruction = genai.RefactorHTMLPrompt(req.HTML, problem)
		key, fallback = "html", req.HTML
	case req.Type == "css" && req.HTML != "":
		prompt, instruction = genai.RefactorCSSPrompt(req.HTML, req.CSS, problem)
		key, fallback = "css", req.CSS
	case req.Type == "js" && req.HTML != "" && req.CSS != "":
		prompt, instruction = genai.RefactorJSPrompt(req.HTML, req.CSS, req.JS, problem)
		key, fallback = "js", req.JS
	default:
		writeError(w, apperror.ValidationFailed("type",
			"please provide the appropriate content for the requested type"))
		return
	}

	result, err := h.gen.Generate(r.Context(), prompt, instruction)
	if err != nil {
		h.logger.Error("web refactor failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	// Models fence their answers despite instructions; unwrap the first fence
	// and fall back to the submitted content if there is none to unwrap.
	writeJSON(w, http.StatusOK, map[string]string{
		key: genai.ExtractFencedCode(result, fallback),
	})
}

// stream forwards model chunks to the client as they arrive, flushing after
// each one. Once the first chunk is written the status is committed, so
// mid-stream failures can only end the stream early; they are logged, not
// reported.
func (h *GenAIHandler) stream(w http.ResponseWriter, r *http.Request, prompt, instruction string) {
	if h.gen == nil {
		writeError(w, apperror.Unavailable("code generation is not configured"))
		return
	}

	flusher, canFlush := w.(http.Flusher)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	wrote := false
	err := h.gen.Stream(r.Context(), prompt, instruction, func(chunk string) error {
		if _, err := w.Write([]byte(chunk)); err != nil {
			return err
		}
		wrote = true
		if canFlush {
			flusher.Flush()
		}
		return nil
	})
	if err != nil {
		h.logger.Error("generation stream failed", slog.String("error", err.Error()))
		if !wrote {
			writeError(w, err)
		}
	}
}
