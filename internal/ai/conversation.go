package ai

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/cchalm/geminichat/internal/telemetry"
)

// Conversation is the state of one chat session: its history and the system role it was started with. A Conversation
// is not safe for concurrent use; callers must serialize calls to SendPrompt.
type Conversation struct {
	transport Transport

	id         string
	systemRole string
	active     bool // Set on the first non-empty prompt; the system role is frozen from then on
	history    History

	logger *zap.Logger
	tracer trace.Tracer
}

// Option configures a Conversation
type Option func(*Conversation)

// WithLogger sets the logger used for exchange diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(c *Conversation) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracer sets the tracer used to record one span per prompt
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Conversation) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithID overrides the generated conversation ID
func WithID(id string) Option {
	return func(c *Conversation) {
		if id != "" {
			c.id = id
		}
	}
}

// NewConversation creates an empty conversation that sends its requests through transport
func NewConversation(transport Transport, opts ...Option) *Conversation {
	c := &Conversation{
		transport: transport,
		id:        telemetry.NewConversationID(),
		logger:    zap.NewNop(),
		tracer:    noop.NewTracerProvider().Tracer(""),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("conversation_id", c.id))
	return c
}

// ID returns the conversation's identifier
func (c *Conversation) ID() string {
	return c.id
}

// SetSystemRole chooses the system instruction for the conversation. It only has an effect before the first prompt is
// sent; afterwards it is ignored.
func (c *Conversation) SetSystemRole(text string) {
	if c.active {
		c.logger.Debug("Ignoring system role change on active conversation")
		return
	}
	c.systemRole = text
}

// SystemRole returns the system instruction in effect, or the one that will be used by the first prompt
func (c *Conversation) SystemRole() string {
	if strings.TrimSpace(c.systemRole) == "" {
		return DefaultSystemInstruction
	}
	return c.systemRole
}

// Active reports whether a prompt has been sent, after which the system role can no longer change
func (c *Conversation) Active() bool {
	return c.active
}

// Len returns the number of turns in the history
func (c *Conversation) Len() int {
	return c.history.Len()
}

// History returns a copy of the turns exchanged so far
func (c *Conversation) History() []Turn {
	return c.history.Turns()
}

// SendPrompt sends a question to the model and records the answer in the history.
//
// The question is appended to the history before the request is made and stays there if the exchange fails, so
// resubmitting the same question after an error produces two consecutive user turns.
func (c *Conversation) SendPrompt(ctx context.Context, question string) (Interaction, error) {
	if strings.TrimSpace(question) == "" {
		return Interaction{}, ErrEmptyQuestion
	}

	ctx, span := c.tracer.Start(ctx, "Conversation.SendPrompt", trace.WithAttributes(
		attribute.String("conversation.id", c.id),
		attribute.Int("conversation.turn_index", c.history.Len()),
	))
	defer span.End()

	interaction, err := c.sendPrompt(ctx, question)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("error.kind", string(KindOf(err))))
		c.logger.Warn("Exchange failed",
			zap.String("kind", string(KindOf(err))),
			zap.Int("turns", c.history.Len()),
			zap.Error(err),
		)
		return Interaction{}, err
	}

	c.logger.Info("Exchange completed", zap.Int("turns", c.history.Len()))
	return interaction, nil
}

func (c *Conversation) sendPrompt(ctx context.Context, question string) (Interaction, error) {
	if !c.active {
		c.systemRole = c.SystemRole()
		c.active = true
	}

	c.history.AppendUserTurn(question)

	payload := BuildRequest(c.systemRole, &c.history)
	body, err := payload.JSON()
	if err != nil {
		return Interaction{}, err
	}
	requestText, err := payload.Pretty()
	if err != nil {
		return Interaction{}, err
	}

	status, responseText, err := c.transport.Post(ctx, body)
	if err != nil {
		return Interaction{}, &TransportError{Err: err}
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.response.status_code", status))

	if status != 200 {
		return Interaction{}, &APIRejectedError{
			StatusCode: status,
			Body:       responseText,
			Request:    requestText,
		}
	}

	answer, content, err := ParseResponse(responseText)
	if err != nil {
		return Interaction{}, err
	}
	if err := c.history.AppendModelTurn(content); err != nil {
		return Interaction{}, &MalformedResponseError{Body: responseText, Reason: err.Error()}
	}

	return Interaction{
		RequestText:  requestText,
		ResponseText: responseText,
		Answer:       answer,
	}, nil
}
