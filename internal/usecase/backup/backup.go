package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type Uploader interface {
	Upload(ctx context.Context, name string, body io.Reader) (string, error)
}

type Options struct {
	// DBPath vazio desliga backup/restore (banco postgres).
	DBPath string
}

type Result struct {
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	UploadedKey string `json:"uploaded_key,omitempty"`
	UploadError string `json:"upload_error,omitempty"`
}

type RestoreResult struct {
	StagedPath      string `json:"staged_path"`
	RequiresRestart bool   `json:"requires_restart"`
}

type Backup struct {
	db        *gorm.DB
	opts      Options
	uploader  Uploader
	authority *auth.Authority
	audit     *audit.Dispatcher
	log       logrus.FieldLogger
}

func NewBackup(
	db *gorm.DB,
	opts Options,
	uploader Uploader,
	authority *auth.Authority,
	audit *audit.Dispatcher,
	log logrus.FieldLogger,
) *Backup {
	return &Backup{
		db:        db,
		opts:      opts,
		uploader:  uploader,
		authority: authority,
		audit:     audit,
		log:       log,
	}
}

// ======================================================
// CREATE
// ======================================================

// Create grava uma cópia consistente do banco em dest (ou em
// <dir do banco>/backups quando dest é vazio) e, se houver bucket
// configurado, envia a cópia. Falha no envio não desfaz a cópia local.
func (b *Backup) Create(ctx context.Context, sess session.Session, dest string) (*Result, error) {
	if err := b.authority.Require(ctx, sess, access.PermBackup); err != nil {
		return nil, err
	}
	if b.opts.DBPath == "" {
		return nil, httperr.Validation("backup_unsupported")
	}

	if dest == "" {
		name := fmt.Sprintf("salon-%s.db", timezone.Now().Format("20060102-150405"))
		dest = filepath.Join(filepath.Dir(b.opts.DBPath), "backups", name)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, httperr.Fatal("backup_failed", err)
	}
	if _, err := os.Stat(dest); err == nil {
		return nil, httperr.BusinessError{
			Kind: httperr.KindValidation,
			Code: "backup_failed",
			Err:  fmt.Errorf("%s already exists", dest),
		}
	}

	if err := b.db.WithContext(ctx).Exec("VACUUM INTO ?", dest).Error; err != nil {
		return nil, httperr.Fatal("backup_failed", fmt.Errorf("vacuum into %s: %w", dest, err))
	}

	info, err := os.Stat(dest)
	if err != nil {
		return nil, httperr.Fatal("backup_failed", err)
	}

	res := &Result{Path: dest, Size: info.Size()}

	if b.uploader != nil {
		if key, err := b.upload(ctx, dest); err != nil {
			b.log.WithError(err).Warn("backup upload failed")
			res.UploadError = httperr.Message("backup_upload_failed")
		} else {
			res.UploadedKey = key
		}
	}

	b.log.WithFields(logrus.Fields{"path": dest, "size": res.Size}).Info("backup created")
	b.audit.Dispatch(audit.NewEvent(sess, "backup_created", "backup", 0).With(res))

	return res, nil
}

func (b *Backup) upload(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return b.uploader.Upload(ctx, filepath.Base(path), f)
}

// ======================================================
// RESTORE
// ======================================================

// Restore valida o arquivo e o deixa preparado ao lado do banco; a troca
// acontece no próximo início, antes de abrir a conexão.
func (b *Backup) Restore(ctx context.Context, sess session.Session, src string) (*RestoreResult, error) {
	if err := b.authority.Require(ctx, sess, access.PermBackup); err != nil {
		return nil, err
	}
	if b.opts.DBPath == "" {
		return nil, httperr.Validation("backup_unsupported")
	}

	if err := validateBackup(src); err != nil {
		return nil, httperr.BusinessError{Kind: httperr.KindValidation, Code: "invalid_backup_file", Err: err}
	}

	staged := db.RestorePath(b.opts.DBPath)
	if err := copyFile(src, staged); err != nil {
		return nil, httperr.Fatal("restore_failed", err)
	}

	b.log.WithFields(logrus.Fields{"source": src, "staged": staged}).Warn("restore staged, restart required")
	b.audit.Dispatch(audit.NewEvent(sess, "restore_staged", "backup", 0).
		With(map[string]string{"source": src}))

	return &RestoreResult{StagedPath: staged, RequiresRestart: true}, nil
}

// validateBackup exige um banco sqlite legível com o ledger de migrações.
func validateBackup(src string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}

	candidate, err := db.Open(sqlite.Open(src))
	if err != nil {
		return err
	}
	defer db.Close(candidate)

	var applied int64
	if err := candidate.Model(&models.Migration{}).Count(&applied).Error; err != nil {
		return fmt.Errorf("missing migration ledger: %w", err)
	}
	if applied == 0 {
		return fmt.Errorf("empty migration ledger")
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dst + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}
