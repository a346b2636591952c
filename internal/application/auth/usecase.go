// Package auth casos de uso de autenticação e gestão de armeiros.
//
// Fluxo de instalação: enquanto não houver nenhum armeiro cadastrado, o login
// aceita a credencial de instalação (admin/1234) e o primeiro cadastro criado
// recebe o papel SUPER_ADMIN. Depois disso o acesso é sempre por matrícula e
// senha com hash bcrypt.
package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sentinela-pm/sentinela-api/internal/application/dto"
	"github.com/sentinela-pm/sentinela-api/internal/domain"
	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
	"github.com/sentinela-pm/sentinela-api/internal/domain/repository"
	"github.com/sentinela-pm/sentinela-api/pkg/jwt"
)

// Credencial de instalação, válida só enquanto a tabela de armeiros está vazia.
const (
	setupMatricula = "admin"
	setupPassword  = "1234"
	setupUserID    = "setup"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticação.
type AuthUseCase struct {
	userRepo repository.UserRepository
	logRepo  repository.SystemLogRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase constrói o caso de uso.
func NewAuthUseCase(userRepo repository.UserRepository, logRepo repository.SystemLogRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, logRepo: logRepo, jwtCfg: jwtCfg}
}

// SetupRequired informa se o sistema ainda está sem armeiro cadastrado.
func (uc *AuthUseCase) SetupRequired() (*dto.SetupRequired, error) {
	n, err := uc.userRepo.Count()
	if err != nil {
		return nil, err
	}
	return &dto.SetupRequired{Required: n == 0}, nil
}

// Login verifica matrícula/senha, gera o JWT e devolve token + armeiro.
// Com a base vazia, aceita a credencial de instalação com papel SUPER_ADMIN.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByMatricula(in.Matricula)
	if err != nil {
		return nil, err
	}
	if user == nil {
		n, err := uc.userRepo.Count()
		if err != nil {
			return nil, err
		}
		if n == 0 && in.Matricula == setupMatricula && in.Password == setupPassword {
			return uc.setupSession()
		}
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Matricula, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.audit(user.DisplayName(), "LOGIN", fmt.Sprintf("Acesso da matrícula %s", user.Matricula))
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// setupSession emite um token temporário de instalação. Ele só serve para
// cadastrar o primeiro armeiro; assim que existir um cadastro, a credencial
// de instalação deixa de ser aceita.
func (uc *AuthUseCase) setupSession() (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, setupUserID, setupMatricula, entity.RoleSuperAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.audit("Instalação", "LOGIN_INSTALACAO", "Acesso com credencial de instalação")
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:          setupUserID,
			Name:        "Instalação",
			Matricula:   setupMatricula,
			Role:        entity.RoleSuperAdmin,
			DisplayName: "Instalação",
		},
	}, nil
}

// CreateUser cadastra um armeiro: hash bcrypt da senha e persistência.
// O primeiro cadastro da base recebe SUPER_ADMIN independente do pedido.
func (uc *AuthUseCase) CreateUser(creatorName string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Name == "" || in.Rank == "" || in.Matricula == "" || in.Password == "" {
		return nil, fmt.Errorf("nome, posto, matrícula e senha são obrigatórios: %w", domain.ErrInvalidInput)
	}
	existing, err := uc.userRepo.GetByMatricula(in.Matricula)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("matrícula %s: %w", in.Matricula, domain.ErrMatriculaExists)
	}
	n, err := uc.userRepo.Count()
	if err != nil {
		return nil, err
	}
	role := in.Role
	if n == 0 {
		role = entity.RoleSuperAdmin
	} else if role == "" {
		role = entity.RoleAdmin
	}
	if role != entity.RoleSuperAdmin && role != entity.RoleAdmin {
		return nil, fmt.Errorf("papel %q: %w", role, domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		WarName:      in.WarName,
		Rank:         in.Rank,
		Numeral:      in.Numeral,
		Matricula:    in.Matricula,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	uc.audit(creatorName, "CADASTRO_ARMEIRO", fmt.Sprintf("%s (matrícula %s, papel %s)", user.DisplayName(), user.Matricula, user.Role))
	return toUserResponse(user), nil
}

// ListUsers lista os armeiros cadastrados.
func (uc *AuthUseCase) ListUsers() ([]dto.UserResponse, error) {
	list, err := uc.userRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// UpdateUser atualiza cadastro de armeiro (campos opcionais). Troca de senha
// recebe novo hash bcrypt.
func (uc *AuthUseCase) UpdateUser(editorName, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.WarName != nil {
		user.WarName = *in.WarName
	}
	if in.Rank != nil {
		user.Rank = *in.Rank
	}
	if in.Numeral != nil {
		user.Numeral = *in.Numeral
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, fmt.Errorf("senha vazia: %w", domain.ErrInvalidInput)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.Role != nil {
		if *in.Role != entity.RoleSuperAdmin && *in.Role != entity.RoleAdmin {
			return nil, fmt.Errorf("papel %q: %w", *in.Role, domain.ErrInvalidInput)
		}
		user.Role = *in.Role
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	uc.audit(editorName, "EDICAO_ARMEIRO", fmt.Sprintf("%s (matrícula %s)", user.DisplayName(), user.Matricula))
	return toUserResponse(user), nil
}

// DeleteUser remove um armeiro. O último SUPER_ADMIN da base não pode ser
// excluído para não trancar o sistema.
func (uc *AuthUseCase) DeleteUser(editorName, id string) error {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if user.Role == entity.RoleSuperAdmin {
		list, err := uc.userRepo.List()
		if err != nil {
			return err
		}
		supers := 0
		for _, u := range list {
			if u.Role == entity.RoleSuperAdmin {
				supers++
			}
		}
		if supers <= 1 {
			return fmt.Errorf("último SUPER_ADMIN não pode ser excluído: %w", domain.ErrConflict)
		}
	}
	if err := uc.userRepo.Delete(id); err != nil {
		return err
	}
	uc.audit(editorName, "EXCLUSAO_ARMEIRO", fmt.Sprintf("%s (matrícula %s)", user.DisplayName(), user.Matricula))
	return nil
}

// GetByID busca um armeiro.
func (uc *AuthUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) audit(armorerName, action, details string) {
	_ = uc.logRepo.Create(&entity.SystemLog{
		ID:          uuid.New().String(),
		ArmorerName: armorerName,
		Action:      action,
		Details:     details,
		Timestamp:   time.Now(),
	})
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		WarName:     u.WarName,
		Rank:        u.Rank,
		Numeral:     u.Numeral,
		Matricula:   u.Matricula,
		Role:        u.Role,
		DisplayName: u.DisplayName(),
		CreatedAt:   u.CreatedAt,
	}
}
