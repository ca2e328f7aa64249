package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/skillswap-app/skillswap-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux) {
	// Auth routes
	r.Post("/api/auth/signup", handlers.UserSignup)
	r.Post("/api/auth/signin", handlers.UserSignin)
	r.Get("/api/auth/me", handlers.GetMe)
	r.Post("/api/auth/signout", handlers.UserSignout)

	// Profile routes
	r.Get("/api/profiles", handlers.BrowseProfiles)
	r.Get("/api/profile", handlers.GetProfile)
	r.Put("/api/profile", handlers.UpdateProfile)
	r.Post("/api/profile/rating", handlers.RateUser)
	r.Post("/api/profiles/samples", handlers.LoadSampleProfiles)

	// Matching routes
	r.Get("/api/matches", handlers.GetSkillMatches)
	r.Post("/api/matches/manual", handlers.AddManualMatch)
	r.Get("/api/matches/manual", handlers.GetManualMatches)

	// Chat routes (MongoDB history + Redis Pub/Sub)
	r.Post("/api/chat/conversations", handlers.StartConversation)
	r.Get("/api/chat/conversations", handlers.GetConversations)
	r.Get("/api/chat/messages", handlers.GetMessages)
	r.Post("/api/chat/messages", handlers.SendMessage)
	r.Put("/api/chat/read", handlers.MarkConversationRead)
	r.Get("/api/chat/unread-count", handlers.GetUnreadCount)
	r.Post("/api/chat/report", handlers.ReportMessage)
	r.Get("/api/chat/predefined", handlers.GetPredefinedMessages)

	// Moderation routes (moderator allow-list enforced in handlers)
	r.Get("/api/moderation/reports", handlers.GetReports)
	r.Put("/api/moderation/reports", handlers.ModerateReport)

	// Subscription and payment routes
	r.Get("/api/subscription/plans", handlers.GetPlans)
	r.Get("/api/subscription", handlers.GetSubscription)
	r.Post("/api/subscription", handlers.Subscribe)
	r.Put("/api/subscription/cancel", handlers.CancelSubscription)
	r.Delete("/api/subscription", handlers.CancelSubscriptionImmediately)
	r.Get("/api/payment-methods", handlers.GetPaymentMethods)

	// File upload routes
	r.Post("/api/upload", handlers.UploadFile)

	// WebSocket endpoint for realtime chat
	r.Get("/ws/chat", handlers.ChatWebSocket)
}
