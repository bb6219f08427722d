package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmdatafocus/supplychain_backend/config"
	"github.com/mmdatafocus/supplychain_backend/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Action tokens the chat generator may emit. Tokens are matched against the
// start of the reply; everything after the token is kept as display text.
const (
	ChatActionRunAutomation = "ACTION:RUN_AUTOMATION"
	ChatActionGetInventory  = "ACTION:GET_INVENTORY"
	ChatActionGetOrders     = "ACTION:GET_ORDERS"
)

// ChatTurn is one prior message in the conversation, oldest first.
type ChatTurn struct {
	Sender  string `json:"sender" binding:"required,oneof=user assistant"`
	Message string `json:"message" binding:"required"`
}

type ChatResult struct {
	Reply       string       `json:"reply"`
	Action      string       `json:"action,omitempty"`
	CycleResult *CycleResult `json:"cycle_result,omitempty"`
}

const chatSystemPrompt = `You are the assistant for a supply chain operations dashboard. You can answer questions about the network and trigger actions.

When the user asks you to run the optimization or replenishment cycle, reply with exactly "ACTION:RUN_AUTOMATION" followed by a short confirmation sentence.
When the user asks about current stock or inventory levels, reply with exactly "ACTION:GET_INVENTORY" followed by a short sentence.
When the user asks about recent or pending orders, reply with exactly "ACTION:GET_ORDERS" followed by a short sentence.
Otherwise answer normally in plain prose. Never invent stock numbers or order ids yourself.`

// ParseChatAction splits a generated reply into a recognized action token
// and the remaining display text. Unrecognized replies return an empty
// action with the full text.
func ParseChatAction(raw string) (string, string) {
	trimmed := strings.TrimSpace(raw)
	for _, action := range []string{ChatActionRunAutomation, ChatActionGetInventory, ChatActionGetOrders} {
		if strings.HasPrefix(trimmed, action) {
			return action, strings.TrimSpace(strings.TrimPrefix(trimmed, action))
		}
	}
	return "", trimmed
}

// InventoryStatusText renders current stock levels as display text for the
// chat surface.
func InventoryStatusText(ctx context.Context) (string, error) {
	records, err := models.ListInventoryRecords(ctx)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "No inventory records found.", nil
	}

	var b strings.Builder
	b.WriteString("Current inventory levels:\n")
	for _, record := range records {
		product, perr := models.GetProduct(ctx, record.ProductId)
		location, lerr := models.GetLocation(ctx, record.LocationId)
		productName := fmt.Sprintf("product %d", record.ProductId)
		locationName := fmt.Sprintf("location %d", record.LocationId)
		if perr == nil {
			productName = product.Name
		}
		if lerr == nil {
			locationName = location.Name
		}
		b.WriteString(fmt.Sprintf("- %s at %s: %d units\n", productName, locationName, record.CurrentStock))
	}
	return b.String(), nil
}

// RecentOrdersText renders the latest orders as display text for the chat
// surface.
func RecentOrdersText(ctx context.Context, limit int) (string, error) {
	orders, err := models.ListRecentOrders(ctx, limit)
	if err != nil {
		return "", err
	}
	if len(orders) == 0 {
		return "No orders found.", nil
	}

	var b strings.Builder
	b.WriteString("Recent orders:\n")
	for _, order := range orders {
		b.WriteString(fmt.Sprintf("- %s: %d units (%s, %s, cost %s)\n",
			order.OrderNumber, order.Quantity, order.OrderType, order.Status, order.CalculatedCost.StringFixed(2)))
	}
	return b.String(), nil
}

// ProcessChatMessage runs one conversational turn. The generator classifies
// intent via action tokens; recognized actions are executed here and their
// results appended to the reply, so the generator never fabricates
// operational data.
func ProcessChatMessage(
	ctx context.Context,
	db *gorm.DB,
	logger *logrus.Logger,
	gen TextGenerator,
	notifier *Notifier,
	history []ChatTurn,
	message string,
) (*ChatResult, error) {

	if gen == nil || !gen.Available() {
		return &ChatResult{Reply: "The assistant is not configured. Set GENAI_API_KEY to enable chat."}, nil
	}

	messages := []config.ChatMessage{{Role: "system", Content: chatSystemPrompt}}
	for _, turn := range history {
		role := "user"
		if turn.Sender == "assistant" {
			role = "assistant"
		}
		messages = append(messages, config.ChatMessage{Role: role, Content: turn.Message})
	}
	messages = append(messages, config.ChatMessage{Role: "user", Content: message})

	raw, err := gen.Chat(ctx, messages, 0.4, 600)
	if err != nil {
		config.LogError(logger, "chat.go", "ProcessChatMessage", "Chat", message, err)
		return nil, err
	}

	action, text := ParseChatAction(raw)
	result := &ChatResult{Reply: text, Action: action}

	switch action {
	case ChatActionRunAutomation:
		cycle, cycleErr := RunOptimizationCycle(ctx, db, logger, gen, notifier, "chat")
		if cycleErr != nil {
			result.Reply = joinReply(text, fmt.Sprintf("Failed to start the optimization cycle: %v", cycleErr))
			return result, nil
		}
		result.CycleResult = cycle
		result.Reply = joinReply(text, fmt.Sprintf("Optimization run %s finished with status %s. %s",
			cycle.RunNumber, cycle.Status, cycle.Summary))

	case ChatActionGetInventory:
		status, invErr := InventoryStatusText(ctx)
		if invErr != nil {
			config.LogError(logger, "chat.go", "ProcessChatMessage", "InventoryStatusText", nil, invErr)
			status = "Could not load inventory right now."
		}
		result.Reply = joinReply(text, status)

	case ChatActionGetOrders:
		orders, ordErr := RecentOrdersText(ctx, 10)
		if ordErr != nil {
			config.LogError(logger, "chat.go", "ProcessChatMessage", "RecentOrdersText", nil, ordErr)
			orders = "Could not load orders right now."
		}
		result.Reply = joinReply(text, orders)
	}

	return result, nil
}

func joinReply(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, strings.TrimSpace(p))
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}
