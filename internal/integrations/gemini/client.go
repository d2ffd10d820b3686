package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// maxToolRounds максимальное число раундов вызова инструментов за одно сообщение
const maxToolRounds = 5

// Client клиент Gemini API с поддержкой вызова инструментов
type Client struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	log       Logger
	metrics   MetricsObserver
}

// NewClient создает клиент Gemini
// systemPrompt задает роль ассистента, tools - доступные инструменты
// metrics может быть nil, если сбор метрик отключен
func NewClient(ctx context.Context, apiKey, modelName, systemPrompt string, tools []Tool, log Logger, metrics MetricsObserver) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("%w: create client: %v", ErrInternal, err)
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}
	if len(tools) > 0 {
		model.Tools = []*genai.Tool{{FunctionDeclarations: toDeclarations(tools)}}
	}

	return &Client{
		client:    client,
		model:     model,
		modelName: modelName,
		log:       log,
		metrics:   metrics,
	}, nil
}

// Close освобождает ресурсы клиента
func (c *Client) Close() error {
	return c.client.Close()
}

// Converse отправляет сообщение пользователя с историей диалога и возвращает
// финальный текстовый ответ модели
// Пока модель запрашивает инструменты, вызывает handle и возвращает модели
// результаты; после maxToolRounds раундов диалог прерывается с ошибкой
func (c *Client) Converse(ctx context.Context, history []Message, input string, handle ToolHandler) (string, error) {
	cs := c.model.StartChat()
	cs.History = toContents(history)

	resp, err := c.send(ctx, cs, genai.Text(input))
	if err != nil {
		return "", err
	}

	for round := 0; round < maxToolRounds; round++ {
		calls := functionCalls(resp)
		if len(calls) == 0 {
			return textOf(resp)
		}

		parts := make([]genai.Part, 0, len(calls))
		for _, call := range calls {
			c.log.Info("Gemini requested tool %s", call.Name)

			result, err := handle(ctx, call.Name, call.Args)
			if err != nil {
				// Ошибка инструмента уходит модели как данные - она сама
				// формулирует ответ пользователю
				c.log.Warn("Tool %s failed: %v", call.Name, err)
				result = map[string]any{"error": err.Error()}
			}

			parts = append(parts, genai.FunctionResponse{
				Name:     call.Name,
				Response: result,
			})
		}

		resp, err = c.send(ctx, cs, parts...)
		if err != nil {
			return "", err
		}
	}

	return "", ErrToolLoopExceeded
}

// send выполняет один запрос к модели с фиксацией метрик
func (c *Client) send(ctx context.Context, cs *genai.ChatSession, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	start := time.Now()
	resp, err := cs.SendMessage(ctx, parts...)
	if c.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		c.metrics.ObserveLLMRequest(c.modelName, status, time.Since(start))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: send message: %v", ErrInternal, err)
	}
	return resp, nil
}

// functionCalls извлекает запросы инструментов из ответа модели
func functionCalls(resp *genai.GenerateContentResponse) []genai.FunctionCall {
	calls := make([]genai.FunctionCall, 0)
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if call, ok := part.(genai.FunctionCall); ok {
				calls = append(calls, call)
			}
		}
	}
	return calls
}

// textOf собирает текстовые части первого кандидата
func textOf(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

// toContents конвертирует историю диалога в формат genai
func toContents(history []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		contents = append(contents, &genai.Content{
			Role:  msg.Role,
			Parts: []genai.Part{genai.Text(msg.Text)},
		})
	}
	return contents
}

// toDeclarations конвертирует описания инструментов в genai-схемы
func toDeclarations(tools []Tool) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		properties := make(map[string]*genai.Schema, len(tool.Params))
		required := make([]string, 0)

		for _, p := range tool.Params {
			properties[p.Name] = &genai.Schema{
				Type:        genai.TypeString,
				Description: p.Description,
			}
			if p.Required {
				required = append(required, p.Name)
			}
		}

		decl := &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
		}
		// Модель отвергает пустую object-схему, поэтому параметры
		// добавляются только при их наличии
		if len(tool.Params) > 0 {
			decl.Parameters = &genai.Schema{
				Type:       genai.TypeObject,
				Properties: properties,
				Required:   required,
			}
		}

		decls = append(decls, decl)
	}
	return decls
}
