package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"sic/internal/config"
	"sic/internal/database"
	"sic/internal/domain/audit"
	"sic/internal/domain/auth"
	"sic/internal/domain/record"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	userRepo := auth.NewRepository(db)
	auditRepo := audit.NewRepository(db)
	recordRepo := record.NewRepository(db)

	log.Println("Running AutoMigrate...")
	if err := userRepo.Migrate(); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}
	if err := auditRepo.Migrate(); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}
	if err := recordRepo.Migrate(); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM audit_logs")
	db.Exec("DELETE FROM service_records")
	db.Exec("DELETE FROM password_resets")
	db.Exec("DELETE FROM security_questions")
	db.Exec("DELETE FROM login_attempts")
	db.Exec("DELETE FROM users")

	ctx := context.Background()

	log.Println("Creating users...")
	seedUser(ctx, userRepo, "admin@sic.com.br", "Administrador", "admin123!", auth.RoleAdmin, "Qual o nome do seu primeiro animal de estimação?", "Rex")
	techID := seedUser(ctx, userRepo, "tecnico@sic.com.br", "Carlos Técnico", "tecnico123!", auth.RoleUser, "Qual a sua cidade natal?", "Fortaleza")
	seedUser(ctx, userRepo, "visitante@sic.com.br", "Visitante", "visita123!", auth.RoleVisitor, "", "")

	log.Println("Creating service records...")
	operators := []string{"Ana", "Bruno", "Carla"}
	neighborhoods := []string{"Centro", "Aldeota", "Meireles", "Benfica"}
	types := []record.ServiceType{record.TypeActivation, record.TypeRepair, record.TypeAddressChange, record.TypeCleanUp}

	for i := 0; i < 40; i++ {
		created := time.Now().Add(-time.Duration(rand.Intn(45*24)) * time.Hour)
		rec := &record.ServiceRecord{
			ID:              uuid.NewString(),
			OperatorName:    operators[rand.Intn(len(operators))],
			TechnicianName:  "Carlos Técnico",
			CompanyName:     "SIC Telecom",
			ContractNumber:  fmt.Sprintf("CT-%04d", 1000+rand.Intn(30)),
			ServiceType:     types[rand.Intn(len(types))],
			Street:          fmt.Sprintf("Rua %d, nº %d", i+1, rand.Intn(900)+100),
			Neighborhood:    neighborhoods[rand.Intn(len(neighborhoods))],
			CTOLocation:     fmt.Sprintf("Poste %d", rand.Intn(50)+1),
			AreaCX:          fmt.Sprintf("CX-%02d", rand.Intn(20)+1),
			AvailableSlots:  fmt.Sprintf("%d", rand.Intn(8)),
			Unit:            "Casa",
			VisitedCXs:      fmt.Sprintf("%d", rand.Intn(4)),
			GeneralComments: "Serviço concluído sem pendências",
			CreatedBy:       techID,
			CreatedAt:       created,
		}
		if err := recordRepo.Create(ctx, rec); err != nil {
			log.Fatal("seed record failed:", err)
		}
	}

	log.Println("Seed complete.")
	log.Println("admin@sic.com.br / admin123!")
	log.Println("tecnico@sic.com.br / tecnico123!")
	log.Println("visitante@sic.com.br / visita123!")
}

func seedUser(ctx context.Context, repo *auth.Repository, email, name, password string, role auth.Role, question, answer string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("hash failed:", err)
	}
	user := &auth.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := repo.Create(ctx, user); err != nil {
		log.Fatal("seed user failed:", err)
	}
	if question != "" {
		err := repo.SetSecurityQuestion(ctx, &auth.SecurityQuestion{
			UserID:   user.ID,
			Question: question,
			Answer:   answer,
		})
		if err != nil {
			log.Fatal("seed security question failed:", err)
		}
	}
	return user.ID
}
