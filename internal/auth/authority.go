package auth

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type UserStore interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsuario(ctx context.Context, usuario string) (*models.User, error)
	SetLastLogin(ctx context.Context, id uint, at string) error
}

type RoleStore interface {
	FindByID(ctx context.Context, id uint) (*models.Role, error)
}

// Authority é o único ponto que decide quem está logado e o que pode
// fazer.
type Authority struct {
	users    UserStore
	roles    RoleStore
	sessions *session.Manager
	tokens   *Tokens
	log      logrus.FieldLogger
}

func NewAuthority(
	users UserStore,
	roles RoleStore,
	sessions *session.Manager,
	tokens *Tokens,
	log logrus.FieldLogger,
) *Authority {
	return &Authority{
		users:    users,
		roles:    roles,
		sessions: sessions,
		tokens:   tokens,
		log:      log,
	}
}

type LoginResult struct {
	User    *models.User
	Session session.Session
	Token   string
}

// ======================================================
// LOGIN / LOGOUT
// ======================================================

// Login devolve NotFound para usuário inexistente e InvalidCredential para
// senha errada. Quem mostra a mensagem ao usuário deve unificar os dois.
func (a *Authority) Login(ctx context.Context, usuario, password string) (*LoginResult, error) {
	user, err := a.users.FindByUsuario(ctx, usuario)
	if err != nil {
		return nil, err
	}

	if !VerifyPassword(user.Password, password) {
		return nil, httperr.InvalidCredential(httperr.CodeInvalidLogin)
	}

	// horário de parede local, não UTC
	now := timezone.FormatTimestamp(timezone.Now())
	if err := a.users.SetLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	sess := a.sessions.Activate(user.ID, user.Level)

	token, err := a.tokens.Issue(sess)
	if err != nil {
		a.sessions.Clear()
		return nil, err
	}

	a.log.WithFields(logrus.Fields{
		"user_id": user.ID,
		"level":   user.Level,
	}).Info("user logged in")

	return &LoginResult{User: user, Session: sess, Token: token}, nil
}

func (a *Authority) Logout() {
	if cur := a.sessions.Current(); cur.Authenticated() {
		a.log.WithField("user_id", cur.UserID).Info("user logged out")
	}
	a.sessions.Clear()
}

// ResolveToken devolve a sessão ativa ligada ao token, ou a anônima se o
// token for inválido, expirado ou de uma sessão já substituída.
func (a *Authority) ResolveToken(raw string) session.Session {
	if raw == "" {
		return session.Anonymous
	}

	id, userID, err := a.tokens.Parse(raw)
	if err != nil {
		return session.Anonymous
	}

	sess := a.sessions.Resolve(id)
	if sess.UserID != userID {
		return session.Anonymous
	}
	return sess
}

func (a *Authority) Current() session.Session {
	return a.sessions.Current()
}

// RefreshLevel mantém a sessão coerente quando o nível do próprio
// usuário logado muda.
func (a *Authority) RefreshLevel(userID uint, level int) {
	a.sessions.Refresh(userID, level)
}

// ======================================================
// PERMISSIONS
// ======================================================

// CheckPermission: sessão anônima nunca tem permissão; nível 1 tem todas
// sem consultar o banco; os demais são relidos do banco (a sessão pode
// estar desatualizada) e consultam a lista do papel.
func (a *Authority) CheckPermission(ctx context.Context, sess session.Session, perm string) (bool, error) {
	if !sess.Authenticated() {
		return false, nil
	}
	if sess.Level == access.LevelAdmin {
		return true, nil
	}

	user, err := a.users.FindByID(ctx, sess.UserID)
	if err != nil {
		if httperr.Is(err, httperr.KindNotFound) {
			return false, nil
		}
		return false, err
	}
	if user.Level == access.LevelAdmin {
		return true, nil
	}

	role, err := a.roles.FindByID(ctx, uint(user.Level))
	if err != nil {
		if httperr.Is(err, httperr.KindNotFound) {
			return false, nil
		}
		return false, err
	}

	return access.Grants(role.Permissions, perm), nil
}

func (a *Authority) RequireSession(sess session.Session) error {
	if !sess.Authenticated() {
		return httperr.Unauthorized("not_authenticated")
	}
	return nil
}

func (a *Authority) Require(ctx context.Context, sess session.Session, perm string) error {
	if err := a.RequireSession(sess); err != nil {
		return err
	}

	ok, err := a.CheckPermission(ctx, sess, perm)
	if err != nil {
		return err
	}
	if !ok {
		a.log.WithFields(logrus.Fields{
			"user_id":    sess.UserID,
			"permission": perm,
		}).Warn("permission denied")
		return httperr.Unauthorized("permission_denied")
	}
	return nil
}

// RequireLevel exige exatamente o nível informado, relendo o usuário.
func (a *Authority) RequireLevel(ctx context.Context, sess session.Session, level int) error {
	if err := a.RequireSession(sess); err != nil {
		return err
	}

	user, err := a.users.FindByID(ctx, sess.UserID)
	if err != nil {
		if httperr.Is(err, httperr.KindNotFound) {
			return httperr.Unauthorized("not_authenticated")
		}
		return err
	}
	if user.Level != level {
		return httperr.Unauthorized("admin_level_required")
	}
	return nil
}
