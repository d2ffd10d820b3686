package gemini

import "context"

// Роли сообщений истории диалога
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message сообщение истории диалога, передаваемое модели как контекст
type Message struct {
	Role string // user | model
	Text string
}

// Tool описание инструмента, доступного модели
// Все параметры строковые - даты, времена и идентификаторы передаются текстом
type Tool struct {
	Name        string
	Description string
	Params      []Param
}

// Param параметр инструмента
type Param struct {
	Name        string
	Description string
	Required    bool
}

// ToolHandler выполняет вызов инструмента по имени
// Возвращаемая map сериализуется в ответ модели; ошибки выполнения
// инструмента передаются модели как поле error, а не прерывают диалог
type ToolHandler func(ctx context.Context, name string, args map[string]any) (map[string]any, error)
