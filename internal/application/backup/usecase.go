// Package backup exporta e restaura o acervo completo como um arquivo ZIP
// contendo um snapshot JSON. A restauração é substituição integral: o estado
// anterior é descartado dentro de uma única transação.
package backup

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/sentinela-pm/sentinela-api/internal/domain"
	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
	"github.com/sentinela-pm/sentinela-api/internal/domain/repository"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Nome do arquivo JSON dentro do ZIP e versão do formato.
const (
	snapshotFile    = "sentinela_backup.json"
	snapshotVersion = 1
)

// Snapshot é o estado completo da aplicação em um instante.
// Inclui os cadastros de armeiros (com hash de senha) para que a restauração
// devolva um sistema utilizável sem reconfiguração.
type Snapshot struct {
	Version    int                 `json:"version"`
	ExportedAt time.Time           `json:"exported_at"`
	Settings   *entity.AppSettings `json:"settings,omitempty"`
	Materials  []entity.Material   `json:"materials"`
	Personnel  []entity.Personnel  `json:"personnel"`
	Cautelas   []entity.Cautela    `json:"cautelas"`
	Users      []entity.User       `json:"users"`
	DailyParts []entity.DailyPart  `json:"daily_parts"`
	Logs       []entity.SystemLog  `json:"logs"`
}

// Store porto de leitura/escrita do snapshot. Restore substitui tudo em uma
// única transação.
type Store interface {
	Export(ctx context.Context) (*Snapshot, error)
	Restore(ctx context.Context, snap *Snapshot) error
}

// UseCase casos de uso de backup.
type UseCase struct {
	store   Store
	logRepo repository.SystemLogRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(store Store, logRepo repository.SystemLogRepository) *UseCase {
	return &UseCase{store: store, logRepo: logRepo}
}

// Export gera o arquivo ZIP com o snapshot JSON.
func (uc *UseCase) Export(ctx context.Context, armorerName string) ([]byte, error) {
	snap, err := uc.store.Export(ctx)
	if err != nil {
		return nil, err
	}
	snap.Version = snapshotVersion
	snap.ExportedAt = time.Now()

	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(snapshotFile)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(payload); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	uc.audit(armorerName, "EXPORTACAO_BACKUP", "Backup completo exportado")
	return buf.Bytes(), nil
}

// Import lê um arquivo exportado por Export e substitui o estado atual.
// Aceita tanto o ZIP quanto o JSON puro.
func (uc *UseCase) Import(ctx context.Context, armorerName string, data []byte) error {
	payload, err := extractSnapshot(data)
	if err != nil {
		return err
	}
	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return fmt.Errorf("backup ilegível: %w", domain.ErrInvalidInput)
	}
	if snap.Version == 0 || snap.Version > snapshotVersion {
		return fmt.Errorf("versão de backup %d não suportada: %w", snap.Version, domain.ErrInvalidInput)
	}
	if err := uc.store.Restore(ctx, &snap); err != nil {
		return err
	}
	// Gravado após a restauração: a trilha fica na base restaurada.
	uc.audit(armorerName, "RESTAURACAO_BACKUP", fmt.Sprintf("Backup de %s restaurado", snap.ExportedAt.Format("02/01/2006")))
	return nil
}

// audit grava auditoria; falha aqui não desfaz a operação.
func (uc *UseCase) audit(armorerName, action, details string) {
	_ = uc.logRepo.Create(&entity.SystemLog{
		ID:          uuid.New().String(),
		ArmorerName: armorerName,
		Action:      action,
		Details:     details,
		Timestamp:   time.Now(),
	})
}

// extractSnapshot localiza o JSON do snapshot: dentro do ZIP ou o corpo cru.
func extractSnapshot(data []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		// Não é ZIP; tenta como JSON puro.
		if len(data) > 0 && data[0] == '{' {
			return data, nil
		}
		return nil, fmt.Errorf("arquivo de backup inválido: %w", domain.ErrInvalidInput)
	}
	for _, f := range zr.File {
		if f.Name != snapshotFile {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("arquivo %s ausente no backup: %w", snapshotFile, domain.ErrInvalidInput)
}
