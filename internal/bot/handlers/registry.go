package handlers

import (
	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// RegisteredHandler represents a handler with its registration information.
// Handlers for update types without a pattern-based handler type (business
// messages) set MatchFunc instead of HandlerType/Pattern/MatchType.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	MatchType   tgbot.MatchType
	MatchFunc   tgbot.MatchFunc
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
}

// RegisterAllHandlers initializes and returns a map of all bot handlers.
func RegisterAllHandlers(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	handlers["/start"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "start",
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Handler:     NewStartHandler(deps),
	}

	handlers["business_message"] = RegisteredHandler{
		MatchFunc: func(update *models.Update) bool {
			return update.BusinessMessage != nil
		},
		Handler: NewBusinessHandler(deps),
	}
	handlers["edited_business_message"] = RegisteredHandler{
		MatchFunc: func(update *models.Update) bool {
			return update.EditedBusinessMessage != nil
		},
		Handler: NewEditedHandler(deps),
	}
	handlers["deleted_business_messages"] = RegisteredHandler{
		MatchFunc: func(update *models.Update) bool {
			return update.DeletedBusinessMessages != nil
		},
		Handler: NewDeletedHandler(deps),
	}

	handlers["callback_close"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     callbackClose,
		MatchType:   tgbot.MatchTypeExact,
		Handler:     NewCallbackHandler(deps),
	}

	return handlers
}
