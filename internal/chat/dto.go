package chat

// MessageRequest is the chat endpoint payload.
type MessageRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	Action  string `json:"action,omitempty"`
}

// ActionCloseChat ends the user's active conversation.
const ActionCloseChat = "close_chat"

// Envelope is the chat response. The same shape is used for completions,
// fallbacks and close acknowledgments; only field population differs.
type Envelope struct {
	Response   string  `json:"response"`
	ChatClosed bool    `json:"chat_closed,omitempty"`
	Context    Context `json:"context"`
}

// Context carries the pipeline's side data alongside the response text.
type Context struct {
	TotalProducts  int    `json:"total_products"`
	LowStockCount  int    `json:"low_stock_count"`
	RelevantCount  int    `json:"relevant_count"`
	QueryType      string `json:"query_type,omitempty"`
	HasProducts    bool   `json:"has_products"`
	CompanyName    string `json:"company_name,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
	Active         bool   `json:"active"`
	Error          bool   `json:"error"`
}
