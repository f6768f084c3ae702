package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/primelots/api-realty/internal/agent"
	"github.com/primelots/api-realty/internal/approval"
	"github.com/primelots/api-realty/internal/auth"
	"github.com/primelots/api-realty/internal/client"
	"github.com/primelots/api-realty/internal/commission"
	"github.com/primelots/api-realty/internal/contract"
	"github.com/primelots/api-realty/internal/db"
	"github.com/primelots/api-realty/internal/filestore"
	"github.com/primelots/api-realty/internal/lot"
	"github.com/primelots/api-realty/internal/notification"
	"github.com/primelots/api-realty/internal/payment"
	"github.com/primelots/api-realty/internal/project"
	"github.com/primelots/api-realty/internal/reservation"
	"github.com/primelots/api-realty/internal/user"
	"gorm.io/gorm"
)

func migrate(database *gorm.DB) error {
	for _, m := range []func(*gorm.DB) error{
		user.Migrate,
		client.Migrate,
		agent.Migrate,
		project.Migrate,
		lot.Migrate,
		reservation.Migrate,
		contract.Migrate,
		payment.Migrate,
		commission.Migrate,
		approval.Migrate,
	} {
		if err := m(database); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	database, err := db.Open()
	if err != nil {
		log.Fatal("database connection failed: ", err)
	}
	if err := migrate(database); err != nil {
		log.Fatal("migration failed: ", err)
	}

	var notifier notification.Sender = notification.NopSender{}
	if url := os.Getenv("NOTIFY_WEBHOOK_URL"); url != "" {
		notifier = notification.NewWebhookSender(url)
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	files, err := filestore.NewDiskStore(uploadDir)
	if err != nil {
		log.Fatal("upload dir: ", err)
	}

	gate := approval.NewGate(database)
	reservationSvc := reservation.NewService(database)
	contractSvc := contract.NewService(database, notifier)
	commissionSvc := commission.NewService(database)

	userHandler := user.NewHandler(database)
	clientHandler := client.NewHandler(database)
	agentHandler := agent.NewHandler(database)
	projectHandler := project.NewHandler(database)
	lotHandler := lot.NewHandler(database)
	reservationHandler := reservation.NewHandler(database)
	contractHandler := contract.NewHandler(contractSvc, files, gate)
	commissionHandler := commission.NewHandler(commissionSvc)
	paymentHandler := payment.NewHandler(database, payment.NewRepository())
	approvalHandler := approval.NewHandler(gate)

	r := mux.NewRouter()
	r.HandleFunc("/login", userHandler.Login).Methods("POST")

	api := r.NewRoute().Subrouter()
	api.Use(auth.Middleware)

	api.HandleFunc("/clients", clientHandler.Create).Methods("POST")
	api.HandleFunc("/clients", clientHandler.List).Methods("GET")
	api.HandleFunc("/clients/{id}", clientHandler.GetByID).Methods("GET")
	api.HandleFunc("/clients/{id}", clientHandler.Update).Methods("PUT")
	api.HandleFunc("/clients/{id}", clientHandler.Delete).Methods("DELETE")

	api.HandleFunc("/agents", agentHandler.Create).Methods("POST")
	api.HandleFunc("/agents", agentHandler.List).Methods("GET")
	api.HandleFunc("/agents/{id}", agentHandler.GetByID).Methods("GET")
	api.HandleFunc("/agents/{id}", agentHandler.Update).Methods("PUT")
	api.HandleFunc("/agents/{id}", agentHandler.Delete).Methods("DELETE")
	api.HandleFunc("/agents/{id}/commissions", commissionHandler.ListByAgent).Methods("GET")

	api.HandleFunc("/projects", projectHandler.Create).Methods("POST")
	api.HandleFunc("/projects", projectHandler.List).Methods("GET")
	api.HandleFunc("/projects/{id}", projectHandler.GetByID).Methods("GET")
	api.HandleFunc("/projects/{id}/phases", projectHandler.AddPhase).Methods("POST")
	api.HandleFunc("/phases/{id}/blocks", projectHandler.AddBlock).Methods("POST")

	api.HandleFunc("/lots", lotHandler.Create).Methods("POST")
	api.HandleFunc("/lots", lotHandler.List).Methods("GET")
	api.HandleFunc("/lots/{id}", lotHandler.GetByID).Methods("GET")
	api.HandleFunc("/lots/{id}", lotHandler.Update).Methods("PUT")

	api.HandleFunc("/reservations", reservationHandler.Create).Methods("POST")
	api.HandleFunc("/reservations", reservationHandler.List).Methods("GET")
	api.HandleFunc("/reservations/{id}", reservationHandler.GetByID).Methods("GET")

	api.HandleFunc("/contracts", contractHandler.Create).Methods("POST")
	api.HandleFunc("/contracts", contractHandler.List).Methods("GET")
	api.HandleFunc("/contracts/{id}", contractHandler.GetByID).Methods("GET")
	api.HandleFunc("/contracts/{id}/breakdown", contractHandler.Breakdown).Methods("GET")
	api.HandleFunc("/contracts/{id}/payments", contractHandler.ListPayments).Methods("GET")
	api.HandleFunc("/contracts/{id}/payments", contractHandler.AcceptPayment).Methods("POST")
	api.HandleFunc("/contracts/{id}/forfeit", contractHandler.Forfeit).Methods("POST")

	api.HandleFunc("/commissions/{id}", commissionHandler.GetByID).Methods("GET")
	api.HandleFunc("/commissions/{id}/breakdown", commissionHandler.Breakdown).Methods("GET")

	api.HandleFunc("/payments/{id}", paymentHandler.GetByID).Methods("GET")

	admin := api.NewRoute().Subrouter()
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/users", userHandler.Create).Methods("POST")
	admin.HandleFunc("/users", userHandler.List).Methods("GET")
	admin.HandleFunc("/users/{id}", userHandler.GetByID).Methods("GET")
	admin.HandleFunc("/commissions/{id}/start", commissionHandler.Start).Methods("POST")
	admin.HandleFunc("/commissions/{id}/release", commissionHandler.Release).Methods("POST")
	admin.HandleFunc("/reservations/sweep", reservationHandler.Sweep).Methods("POST")
	admin.HandleFunc("/approvals", approvalHandler.ListPending).Methods("GET")
	admin.HandleFunc("/approvals/{id}/approve", approvalHandler.Approve).Methods("POST")
	admin.HandleFunc("/approvals/{id}/reject", approvalHandler.Reject).Methods("POST")

	go runDailySweep(reservationSvc, contractSvc)

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}

// runDailySweep forfeits lapsed reservations and sends due-payment reminders
// once per day. Both operations are idempotent, so a restart mid-cycle is
// harmless.
func runDailySweep(reservations *reservation.Service, contracts *contract.Service) {
	run := func() {
		if n, err := reservations.Sweep(); err != nil {
			log.Printf("reservation sweep failed: %v", err)
		} else if n > 0 {
			log.Printf("reservation sweep forfeited %d reservations", n)
		}
		if n, err := contracts.RemindDue(); err != nil {
			log.Printf("payment reminders failed: %v", err)
		} else if n > 0 {
			log.Printf("sent %d payment reminders", n)
		}
	}

	run()
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		run()
	}
}
