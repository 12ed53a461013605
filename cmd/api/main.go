package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/printmate/backend/internal/modules/auth"
	"github.com/printmate/backend/internal/modules/document"
	"github.com/printmate/backend/internal/modules/inventory"
	"github.com/printmate/backend/internal/modules/order"
	"github.com/printmate/backend/internal/modules/quote"
	"github.com/printmate/backend/internal/modules/ratecard"
	"github.com/printmate/backend/internal/modules/user"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	user.NewHandler(userService).RegisterRoutes(router)

	authService := auth.NewService(userRepo)
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Pricing configuration ───────────────────────────────
	rateCardRepo := ratecard.NewPostgresRepository(db)
	rateCardService := ratecard.NewService(rateCardRepo)
	ratecard.NewHandler(rateCardService).RegisterRoutes(router, auth.RequireAdmin)

	// ── Cart quoting ────────────────────────────────────────
	quoteService := quote.NewService(rateCardService)
	quote.NewHandler(quoteService).RegisterRoutes(router)

	// ── Documents ───────────────────────────────────────────
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	documentRepo := document.NewPostgresRepository(db)
	documentService := document.NewService(documentRepo, document.NewPDFPageCounter(), uploadDir)
	document.NewHandler(documentService).RegisterRoutes(router)

	// ── Paper stock ─────────────────────────────────────────
	inventoryRepo := inventory.NewPostgresRepository(db)
	inventoryService := inventory.NewService(inventoryRepo)
	inventory.NewHandler(inventoryService).RegisterRoutes(router, auth.RequireAdmin)

	// ── Orders ──────────────────────────────────────────────
	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, rateCardService, inventoryService)
	order.NewHandler(orderService).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Printmate API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
