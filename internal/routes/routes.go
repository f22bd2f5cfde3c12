package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/saeid-a/FitBuddyBack/internal/config"
	"github.com/saeid-a/FitBuddyBack/internal/handlers"
	"github.com/saeid-a/FitBuddyBack/internal/middleware"
	"github.com/saeid-a/FitBuddyBack/internal/repository"
	"github.com/saeid-a/FitBuddyBack/internal/services"
	chatws "github.com/saeid-a/FitBuddyBack/internal/websocket"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	postRepo := repository.NewPostRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	profileHandler := handlers.NewProfileHandler(userRepo)
	matchService := services.NewMatchService(userRepo, matchRepo)
	matchHandler := handlers.NewMatchHandler(matchService)
	feedService := services.NewFeedService(postRepo)
	feedHandler := handlers.NewFeedHandler(feedService)
	challengeService := services.NewChallengeService(challengeRepo, userRepo)
	challengeHandler := handlers.NewChallengeHandler(challengeService)
	workoutService := services.NewWorkoutService(db, workoutRepo)
	workoutHandler := handlers.NewWorkoutHandler(workoutService)
	chatHub := chatws.NewHub()
	go chatHub.Run()
	chatService := services.NewChatService(db, conversationRepo, messageRepo, matchRepo, userRepo)
	chatHandler := handlers.NewChatHandler(chatService, chatHub, cfg.JWTSecret)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	users := authProtected.Group("/users")
	users.Get("", profileHandler.ListUsers)
	users.Put("/profile", profileHandler.UpdateProfile)
	users.Get("/:id", profileHandler.GetUser)
	users.Get("/:id/posts", feedHandler.ListUserPosts)

	matches := authProtected.Group("/matches")
	matches.Get("", matchHandler.ListMatches)
	matches.Post("", matchHandler.CreateMatch)
	matches.Get("/potential", matchHandler.ListPotentialMatches)
	matches.Get("/score/:userId", matchHandler.GetScore)
	matches.Put("/:id/status", matchHandler.UpdateStatus)
	matches.Post("/:id/accept", matchHandler.Accept)
	matches.Post("/:id/decline", matchHandler.Decline)

	posts := authProtected.Group("/posts")
	posts.Get("", feedHandler.ListPosts)
	posts.Post("", feedHandler.CreatePost)
	posts.Get("/:id", feedHandler.GetPost)
	posts.Post("/:id/like", feedHandler.LikePost)
	posts.Delete("/:id/like", feedHandler.UnlikePost)

	challenges := authProtected.Group("/challenges")
	challenges.Get("", challengeHandler.ListChallenges)
	challenges.Post("", challengeHandler.CreateChallenge)
	challenges.Get("/:id", challengeHandler.GetChallenge)
	challenges.Put("/:id", challengeHandler.UpdateChallenge)
	challenges.Delete("/:id", challengeHandler.DeleteChallenge)
	challenges.Post("/:id/join", challengeHandler.JoinChallenge)
	challenges.Post("/:id/leave", challengeHandler.LeaveChallenge)
	challenges.Put("/:id/progress", challengeHandler.UpdateProgress)

	authProtected.Get("/leaderboard", challengeHandler.GlobalLeaderboard)

	conversations := authProtected.Group("/conversations")
	conversations.Get("", chatHandler.ListConversations)
	conversations.Post("", chatHandler.CreateConversation)
	conversations.Get("/:id/messages", chatHandler.GetMessages)
	conversations.Post("/:id/messages", chatHandler.SendMessage)
	conversations.Post("/:id/read", chatHandler.MarkRead)

	workouts := authProtected.Group("/workouts")
	workouts.Get("", workoutHandler.ListWorkouts)
	workouts.Post("", workoutHandler.LogWorkout)
	workouts.Get("/:id", workoutHandler.GetWorkout)
	workouts.Delete("/:id", workoutHandler.DeleteWorkout)

	authProtected.Get("/progress", workoutHandler.Progress)

	api.Use("/v1/ws", chatHandler.WebSocketAuth)
	api.Get("/v1/ws", websocket.New(chatHandler.HandleWebSocket))

	registerDocsRoutes(app, cfg)
}
