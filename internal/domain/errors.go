package domain

import "errors"

// Erros de domínio (sem dependências externas).
// A taxonomia do núcleo de cautelas mapeia assim: erros de validação
// (ErrInvalidInput, ErrMissingSignature, ErrMaterialIndisponivel,
// ErrPessoaInativa), não-encontrado (ErrNotFound) e conflito de estado
// (ErrConflict, para devolução de cautela já fechada).
var (
	ErrNotFound             = errors.New("recurso não encontrado")
	ErrUserNotFound         = errors.New("usuário não encontrado")
	ErrMatriculaExists      = errors.New("a matrícula já está cadastrada")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrMissingSignature     = errors.New("assinatura digital obrigatória")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("não autorizado")
	ErrForbidden            = errors.New("acesso negado")
	ErrConflict             = errors.New("conflito com o estado atual")
	ErrMaterialIndisponivel = errors.New("material não disponível para cautela")
	ErrPessoaInativa        = errors.New("policial inativo no efetivo")
)
