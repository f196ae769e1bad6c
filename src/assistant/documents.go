package assistant

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/govsecure/platform/src/ai/core"
)

// ErrEmptyDocument is returned when document content is empty or
// whitespace-only.
var ErrEmptyDocument = errors.New("document content cannot be empty")

// promptContentLimit caps how much document text is sent to the
// provider.
const promptContentLimit = 4000

// translateContentLimit caps how much text is sent for translation.
const translateContentLimit = 3000

// DocumentAnalysis is the result of analyzing one document.
type DocumentAnalysis struct {
	AnalysisType  string    `json:"analysis_type"`
	Summary       string    `json:"summary"`
	Timestamp     time.Time `json:"timestamp"`
	ContentLength int       `json:"content_length"`
	ModelUsed     string    `json:"model_used"`
}

// TranslationResult is the result of one translation request.
type TranslationResult struct {
	SourceLanguage string    `json:"source_language"`
	TargetLanguage string    `json:"target_language"`
	OriginalText   string    `json:"original_text"`
	TranslatedText string    `json:"translated_text"`
	Timestamp      time.Time `json:"timestamp"`
	ModelUsed      string    `json:"model_used"`
}

// CitizenQuery is a structured citizen service request.
type CitizenQuery struct {
	QueryType               string   `json:"query_type"`
	Category                string   `json:"category"`
	Priority                string   `json:"priority"`
	Summary                 string   `json:"summary"`
	SuggestedActions        []string `json:"suggested_actions"`
	RequiredDocuments       []string `json:"required_documents"`
	EstimatedProcessingTime string   `json:"estimated_processing_time"`
}

var analysisInstructions = map[string]string{
	"general":    "Analyze this government document and provide a comprehensive summary including key points, important dates, stakeholders, and action items.",
	"compliance": "Analyze this document for compliance considerations including regulatory requirements, risk factors, control gaps, and remediation recommendations.",
	"policy":     "Analyze this policy document including policy objectives, implementation requirements, affected stakeholders, and potential impacts.",
	"legal":      "Analyze this legal document for key legal provisions, obligations, rights, deadlines, and compliance requirements.",
	"financial":  "Analyze this financial document including budget items, expenditures, revenue sources, financial risks, and audit considerations.",
}

// AnalyzeDocument summarizes document content with a
// government-specific focus.
func (a *Assistant) AnalyzeDocument(ctx context.Context, content, analysisType string) (DocumentAnalysis, error) {
	if strings.TrimSpace(content) == "" {
		return DocumentAnalysis{}, ErrEmptyDocument
	}

	instruction, ok := analysisInstructions[analysisType]
	if !ok {
		instruction = analysisInstructions["general"]
	}

	words := len(strings.Fields(content))
	req := core.Request{
		Task:   core.TaskDocumentAnalysis,
		System: "You are a government document analyst. " + instruction,
		Prompt: "Please analyze this document:\n\n" + truncate(content, promptContentLimit),
		Metadata: map[string]string{
			"analysis_type":     analysisType,
			"word_count":        strconv.Itoa(words),
			"compliance_points": strconv.Itoa(words / 100),
		},
		Options: core.Options{Temperature: 0.3},
	}

	summary, model := a.complete(ctx, req)
	return DocumentAnalysis{
		AnalysisType:  analysisType,
		Summary:       summary,
		Timestamp:     time.Now(),
		ContentLength: len(content),
		ModelUsed:     model,
	}, nil
}

// TranslateText translates text with government context awareness. It
// always succeeds; without a live provider the translated text carries
// a visible mock marker.
func (a *Assistant) TranslateText(ctx context.Context, text, targetLanguage string) TranslationResult {
	system := fmt.Sprintf(`You are a professional government translator specializing in official document translation.

Translate the following text to %s while:
- Maintaining official government terminology
- Preserving legal and regulatory language precision
- Keeping proper nouns and official titles
- Maintaining formal tone appropriate for government communications
- Indicating any terms that may need cultural adaptation

Provide only the translation without additional commentary.`, targetLanguage)

	req := core.Request{
		Task:   core.TaskTranslation,
		System: system,
		Prompt: fmt.Sprintf("Translate this text to %s:\n\n%s", targetLanguage, truncate(text, translateContentLimit)),
		Metadata: map[string]string{
			"target_language": targetLanguage,
			"text":            text,
		},
		Options: core.Options{Temperature: 0.2},
	}

	translated, model := a.complete(ctx, req)

	source := "auto-detected"
	if model == a.mock.Model() {
		source = "English"
	}
	return TranslationResult{
		SourceLanguage: source,
		TargetLanguage: targetLanguage,
		OriginalText:   text,
		TranslatedText: translated,
		Timestamp:      time.Now(),
		ModelUsed:      model,
	}
}

// ProcessCitizenQuery structures a raw citizen inquiry.
func (a *Assistant) ProcessCitizenQuery(ctx context.Context, query string) CitizenQuery {
	category := categorizeCitizenService(query)
	priority := assessQueryPriority(query)

	if !a.live {
		return CitizenQuery{
			QueryType: category,
			Category:  category,
			Priority:  priority,
			Summary:   fmt.Sprintf("Citizen inquiry regarding %s: %s...", category, truncate(query, 100)),
			SuggestedActions: []string{
				"Review inquiry details",
				"Contact appropriate department",
				"Provide status update to citizen",
			},
			RequiredDocuments:       []string{"Government ID", "Supporting documentation"},
			EstimatedProcessingTime: "5-7 business days",
		}
	}

	system := fmt.Sprintf(`Analyze this citizen service query and provide structured information:

Query Category: %s
Priority Level: %s

Provide:
1. Brief summary of the request
2. Suggested actions for resolution
3. Required documents or information
4. Estimated processing time
5. Alternative solutions if applicable

Format response as structured data.`, category, priority)

	req := core.Request{
		Task:     core.TaskChat,
		System:   system,
		Prompt:   query,
		Metadata: map[string]string{"mode": string(ModeCitizenService), "category": category},
		Options:  core.Options{Temperature: 0.4, MaxTokens: 800},
	}
	summary, _ := a.complete(ctx, req)

	return CitizenQuery{
		QueryType:               category,
		Category:                category,
		Priority:                priority,
		Summary:                 truncate(summary, 200) + "...",
		SuggestedActions:        []string{"Contact appropriate department", "Provide required documentation"},
		RequiredDocuments:       []string{"Government ID", "Proof of address"},
		EstimatedProcessingTime: "3-5 business days",
	}
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
