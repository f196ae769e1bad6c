// Package assistant implements the mode-scoped conversational
// assistant with session and knowledge-base context. Each mode builds
// a system prompt from its knowledge table and forwards the message to
// the configured completion provider; without a provider, requests are
// answered by the offline client so the assistant keeps working.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/govsecure/platform/src/ai/core"
	"github.com/govsecure/platform/src/ai/mockai"
	"github.com/govsecure/platform/src/config"
	"github.com/govsecure/platform/src/logging"
)

// maxHistoryTurns bounds the conversation history; the oldest turns
// are evicted first.
const maxHistoryTurns = 200

const apology = "I apologize, but I encountered an error processing your request. Please try again or contact technical support."

// Turn is a single conversation entry.
type Turn struct {
	Timestamp time.Time `json:"timestamp"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Mode      Mode      `json:"mode"`
}

// Status reports assistant health for the REST boundary and CLI.
type Status struct {
	AssistantReady     bool   `json:"assistant_ready"`
	CurrentMode        Mode   `json:"current_mode"`
	ProviderAvailable  bool   `json:"provider_available"`
	ConversationLength int    `json:"conversation_length"`
	Model              string `json:"model"`
}

// Assistant routes messages to the handler for its current mode.
// Safe for use from concurrent request handlers.
type Assistant struct {
	cfg    config.Config
	log    *zap.Logger
	client core.Client // live provider, or the offline client
	mock   core.Client // degradation target for failed live calls
	live   bool

	mu      sync.Mutex
	mode    Mode
	history []Turn
}

// New builds an assistant. client may be nil, which selects the
// offline provider for every call.
func New(cfg config.Config, client core.Client, log *zap.Logger) *Assistant {
	mock := mockai.New()
	live := client != nil
	if !live {
		client = mock
		log.Warn("no completion provider configured, assistant runs offline")
	}
	return &Assistant{
		cfg:    cfg,
		log:    log,
		client: client,
		mock:   mock,
		live:   live,
		mode:   ModeGeneral,
	}
}

// SetMode switches the operating mode and clears conversation history.
func (a *Assistant) SetMode(mode Mode) error {
	if _, err := ParseMode(string(mode)); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mode = mode
	a.history = nil
	a.log.Info("assistant mode set", zap.String("mode", string(mode)))
	return nil
}

// SetModeName is SetMode for a raw string.
func (a *Assistant) SetModeName(name string) error {
	mode, err := ParseMode(name)
	if err != nil {
		return err
	}
	return a.SetMode(mode)
}

// CurrentMode returns the active mode.
func (a *Assistant) CurrentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// History returns a copy of the conversation history.
func (a *Assistant) History() []Turn {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Turn(nil), a.history...)
}

// ClearHistory drops the conversation history.
func (a *Assistant) ClearHistory() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = nil
	a.log.Info("conversation history cleared")
}

// SystemStatus reports current assistant state.
func (a *Assistant) SystemStatus() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Status{
		AssistantReady:     true,
		CurrentMode:        a.mode,
		ProviderAvailable:  a.live,
		ConversationLength: len(a.history),
		Model:              a.client.Model(),
	}
}

// Chat answers a message under the current mode. It never fails
// outward: provider errors degrade to offline responses, and any other
// internal failure yields an apology string.
func (a *Assistant) Chat(ctx context.Context, message string) string {
	a.mu.Lock()
	mode := a.mode
	a.appendTurn(Turn{Timestamp: time.Now(), Role: "user", Content: message, Mode: mode})
	a.mu.Unlock()

	req, ok := a.buildChatRequest(mode, message)
	var response string
	if !ok {
		response = apology
	} else {
		response, _ = a.complete(ctx, req)
	}

	a.mu.Lock()
	a.appendTurn(Turn{Timestamp: time.Now(), Role: "assistant", Content: response, Mode: mode})
	a.mu.Unlock()
	return response
}

// complete issues the request against the selected provider and falls
// back to the offline client when the live call errors. The second
// return value names the model that produced the response.
func (a *Assistant) complete(ctx context.Context, req core.Request) (string, string) {
	resp, err := a.client.Complete(ctx, req)
	if err == nil && strings.TrimSpace(resp) != "" {
		return resp, a.client.Model()
	}
	if err != nil {
		if logging.IsRateLimit(err) {
			a.log.Warn("completion rate limited, degrading to offline response",
				zap.String("task", string(req.Task)), zap.Error(err))
		} else {
			a.log.Error("completion failed, degrading to offline response",
				zap.String("task", string(req.Task)), zap.Error(err))
		}
	}
	resp, _ = a.mock.Complete(ctx, req)
	return resp, a.mock.Model()
}

func (a *Assistant) buildChatRequest(mode Mode, message string) (core.Request, bool) {
	meta := map[string]string{"mode": string(mode)}
	opts := core.Options{Temperature: a.cfg.AI.Temperature}

	var system string
	switch mode {
	case ModeCitizenService:
		category := categorizeCitizenService(message)
		meta["category"] = category
		services, err := json.MarshalIndent(citizenServices[category], "", "  ")
		if err != nil {
			return core.Request{}, false
		}
		system = fmt.Sprintf(`You are a helpful government customer service representative assisting citizens with %s services.

Key responsibilities:
- Provide accurate information about government services
- Guide citizens through processes step-by-step
- Identify required documents and forms
- Estimate processing times
- Offer alternative solutions when possible
- Maintain a professional, empathetic tone
- Reference relevant government websites and contact information

Available services in %s:
%s

Current conversation context: %s`, category, category, services, mode)

	case ModeCompliance:
		opts.Temperature = 0.3
		system = fmt.Sprintf(`You are a compliance expert specializing in government and federal regulations.

Your expertise covers:
- NIST 800-53 Security Controls
- FedRAMP compliance requirements
- FISMA implementation
- CMMC certification levels
- SOX financial controls
- Data protection regulations (GDPR, CCPA)
- Industry standards (ISO 27001, SOC 2)

Available frameworks: %s

Provide specific, actionable guidance including:
- Relevant control requirements
- Implementation recommendations
- Risk assessment considerations
- Documentation requirements
- Audit preparation steps

Current context: Government compliance assistance`, strings.Join(complianceFrameworks, ", "))

	case ModeEmergencyResponse:
		opts.Temperature = 0.4
		agencies, err := json.MarshalIndent(governmentAgencies, "", "  ")
		if err != nil {
			return core.Request{}, false
		}
		system = fmt.Sprintf(`You are an emergency management coordinator assisting with emergency response planning and coordination.

Your responsibilities include:
- Emergency response planning and protocols
- Resource coordination and allocation
- Inter-agency communication
- Public safety coordination
- Disaster recovery planning
- Crisis communication strategies

Emergency categories: %s

Government agencies coordination:
%s

Provide actionable emergency management guidance including:
- Response protocols and procedures
- Resource requirements and coordination
- Communication strategies
- Timeline considerations
- Recovery planning steps

Maintain urgency and clarity appropriate for emergency situations.`, strings.Join(emergencyCategories, ", "), agencies)

	default:
		system = `You are a knowledgeable government assistant helping with general inquiries about government services, processes, and information.

Your role includes:
- Providing accurate information about government services
- Explaining government processes and procedures
- Directing citizens to appropriate agencies and resources
- Offering guidance on civic engagement
- Clarifying government policies and regulations

Maintain a helpful, professional tone and provide specific, actionable information whenever possible.
Always suggest appropriate next steps or resources for follow-up.`
	}

	return core.Request{
		Task:     core.TaskChat,
		System:   system,
		Prompt:   message,
		Metadata: meta,
		Options:  opts,
	}, true
}

// appendTurn adds a turn under the held lock, evicting the oldest
// entries beyond the cap.
func (a *Assistant) appendTurn(t Turn) {
	a.history = append(a.history, t)
	if len(a.history) > maxHistoryTurns {
		a.history = a.history[len(a.history)-maxHistoryTurns:]
	}
}
