// seed popula o banco com dados de exemplo para desenvolvimento:
// um armeiro SUPER_ADMIN, policiais do efetivo e materiais do acervo.
//
// Uso: go run ./cmd/seed
// Idempotente por matrícula e número de série: registros já existentes são pulados.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
	"github.com/sentinela-pm/sentinela-api/internal/infrastructure/postgres"
	"github.com/sentinela-pm/sentinela-api/internal/infrastructure/postgres/migrations"
	"github.com/sentinela-pm/sentinela-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "carregar configuração: %v\n", err)
		os.Exit(1)
	}

	if err := migrations.Up(cfg.DB.ConnectionString()); err != nil {
		fmt.Fprintf(os.Stderr, "migrações: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexão ao PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	personnelRepo := postgres.NewPersonnelRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)

	now := time.Now()

	// Armeiro inicial
	existing, err := userRepo.GetByMatricula("100001")
	if err != nil {
		fatal("consultar armeiro", err)
	}
	if existing == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("sentinela"), bcrypt.DefaultCost)
		if err != nil {
			fatal("gerar hash", err)
		}
		err = userRepo.Create(&entity.User{
			ID:           uuid.New().String(),
			Name:         "Carlos Alberto da Silva",
			WarName:      "Silva",
			Rank:         "Sgt",
			Matricula:    "100001",
			PasswordHash: string(hash),
			Role:         entity.RoleSuperAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			fatal("criar armeiro", err)
		}
		fmt.Println("armeiro 100001 criado (senha: sentinela)")
	}

	seedPersonnel := []entity.Personnel{
		{Name: "João Pedro de Souza", WarName: "Souza", Rank: "Sd", Matricula: "200101", Area: "Rádio Patrulha", Active: true},
		{Name: "Marcos Vinícius Oliveira", WarName: "Oliveira", Rank: "Cb", Numeral: "2º", Matricula: "200102", Area: "Força Tática", Active: true},
		{Name: "Ana Paula Ferreira", WarName: "Ferreira", Rank: "Sd", Matricula: "200103", Area: "Trânsito", Active: true},
		{Name: "Roberto Lima Santos", WarName: "Lima", Rank: "Sgt", Matricula: "200104", Area: "Guarda do Quartel", Active: false},
	}
	for _, p := range seedPersonnel {
		found, err := personnelRepo.GetByMatricula(p.Matricula)
		if err != nil {
			fatal("consultar efetivo", err)
		}
		if found != nil {
			continue
		}
		p.ID = uuid.New().String()
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := personnelRepo.Create(&p); err != nil {
			fatal("criar policial", err)
		}
		fmt.Printf("policial %s (%s) criado\n", p.DisplayName(), p.Matricula)
	}

	seedMaterials := []entity.Material{
		{Category: entity.CategoriaArmamento, Type: "Pistola", Model: "Taurus TS9", SerialNumber: "TS9-0001", Manufacturer: "Taurus", Caliber: "9mm", Condition: "Bom", Quantity: 1},
		{Category: entity.CategoriaArmamento, Type: "Pistola", Model: "Taurus TS9", SerialNumber: "TS9-0002", Manufacturer: "Taurus", Caliber: "9mm", Condition: "Novo", Quantity: 1},
		{Category: entity.CategoriaArmamento, Type: "Espingarda", Model: "CBC Pump", SerialNumber: "CBC-0001", Manufacturer: "CBC", Caliber: "12", Condition: "Regular", Quantity: 1},
		{Category: entity.CategoriaMunicao, Type: "Munição", Model: "CBC 9mm ETPP", SerialNumber: "LOTE-2024-09", Manufacturer: "CBC", Caliber: "9mm", Condition: "Novo", Quantity: 500},
		{Category: entity.CategoriaCarregador, Type: "Carregador", Model: "TS9 17 tiros", Manufacturer: "Taurus", Condition: "Bom", Quantity: 20},
		{Category: entity.CategoriaColete, Type: "Colete Balístico", Model: "Nível III-A", SerialNumber: "CB-0001", Condition: "Bom", Quantity: 1},
		{Category: entity.CategoriaColete, Type: "Colete Balístico", Model: "Nível III-A", SerialNumber: "CB-0002", Condition: "Bom", Quantity: 1},
		{Category: entity.CategoriaRadio, Type: "HT", Model: "Motorola APX", SerialNumber: "HT-0001", Condition: "Bom", Quantity: 1},
		{Category: entity.CategoriaRadio, Type: "HT", Model: "Motorola APX", SerialNumber: "HT-0002", Condition: "Regular", Quantity: 1},
		{Category: entity.CategoriaAlgema, Type: "Algema", Model: "Aço inox", Condition: "Bom", Quantity: 10},
	}
	for _, m := range seedMaterials {
		if m.SerialNumber != "" {
			found, err := materialRepo.GetBySerialNumber(m.SerialNumber)
			if err != nil {
				fatal("consultar acervo", err)
			}
			if found != nil {
				continue
			}
		}
		m.ID = uuid.New().String()
		m.Status = entity.StatusDisponivel
		m.CreatedAt = now
		m.UpdatedAt = now
		if err := materialRepo.Create(&m); err != nil {
			fatal("criar material", err)
		}
		fmt.Printf("material %s %s (%s) criado\n", m.Type, m.Model, m.SerialNumber)
	}

	fmt.Println("seed concluído")
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
