package actors

import (
	stdctx "context"
	"log"
	"time"

	"driftwood/internal/database"
	"driftwood/internal/models"
	"driftwood/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Message types for UserActor
type (
	RegisterUserMsg struct {
		Email        string `json:"email"`
		Password     string `json:"password"`
		Nickname     string `json:"nickname"`
		ReferralCode string `json:"referralCode"`
	}

	LoginMsg struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	GetProfileMsg struct {
		UID uuid.UUID `json:"uid"`
	}

	UpdateNicknameMsg struct {
		UID      uuid.UUID `json:"uid"`
		Nickname string    `json:"nickname"`
	}

	DeleteAccountMsg struct {
		UID uuid.UUID `json:"uid"`
	}
)

// LoginResult is returned for LoginMsg. The HTTP layer turns a
// successful result into a signed session token.
type LoginResult struct {
	Success  bool        `json:"success"`
	UserID   uuid.UUID   `json:"userId"`
	Nickname string      `json:"nickname"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
	Error    string      `json:"error,omitempty"`
}

// AccountDeleted is returned for DeleteAccountMsg.
type AccountDeleted struct {
	UID uuid.UUID `json:"uid"`
}

// UserActor manages sign-up, login, and account deletion. Sign-up is
// gated by an existing referral code document.
type UserActor struct {
	db         database.DBAdapter
	metrics    *utils.MetricsCollector
	adminEmail string
}

func NewUserActor(db database.DBAdapter, metrics *utils.MetricsCollector, adminEmail string) actor.Actor {
	return &UserActor{
		db:         db,
		metrics:    metrics,
		adminEmail: adminEmail,
	}
}

func (a *UserActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("UserActor started")

	case *actor.Stopping:
		log.Printf("UserActor stopping")

	case *RegisterUserMsg:
		a.handleRegisterUser(context, msg)

	case *LoginMsg:
		a.handleLogin(context, msg)

	case *GetProfileMsg:
		a.handleGetProfile(context, msg)

	case *UpdateNicknameMsg:
		a.handleUpdateNickname(context, msg)

	case *DeleteAccountMsg:
		a.handleDeleteAccount(context, msg)

	default:
		log.Printf("UserActor: Unknown message type %T", msg)
	}
}

// handleRegisterUser runs the sign-up checks in a fixed order: referral
// gate, email uniqueness, password strength, nickname uniqueness. All
// checks precede the credential write because a failure after that
// write cannot be rolled back by this layer.
func (a *UserActor) handleRegisterUser(context actor.Context, msg *RegisterUserMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	valid, err := a.db.ReferralCodeExists(ctx, msg.ReferralCode)
	if err != nil {
		context.Respond(utils.NewDatabaseError("check referral code", err))
		return
	}
	if !valid {
		context.Respond(utils.NewAppError(utils.ErrInvalidReferral, "A valid referral code is required to sign up", nil))
		return
	}

	emailTaken, err := a.db.IsEmailTaken(ctx, msg.Email)
	if err != nil {
		context.Respond(utils.NewDatabaseError("check email", err))
		return
	}
	if emailTaken {
		context.Respond(utils.NewAppError(utils.ErrEmailTaken, "Email is already in use", nil))
		return
	}

	if len(msg.Password) < 6 {
		context.Respond(utils.NewAppError(utils.ErrWeakPassword, "Password must be at least 6 characters", nil))
		return
	}

	nicknameTaken, err := a.db.IsNicknameTaken(ctx, msg.Nickname)
	if err != nil {
		context.Respond(utils.NewDatabaseError("check nickname", err))
		return
	}
	if nicknameTaken {
		context.Respond(utils.NewAppError(utils.ErrNicknameTaken, "Nickname is already in use", nil))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(msg.Password), 14)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Failed to hash password", err))
		return
	}

	user := &models.User{
		ID:             uuid.New(),
		Email:          msg.Email,
		DisplayName:    msg.Nickname,
		HashedPassword: string(hashed),
		CreatedAt:      time.Now(),
	}

	if err := a.db.SaveUser(ctx, user); err != nil {
		context.Respond(utils.NewDatabaseError("create account", err))
		return
	}

	profile := &models.Profile{
		UID:          user.ID,
		Email:        msg.Email,
		Nickname:     msg.Nickname,
		ReferralCode: msg.ReferralCode,
		CreatedAt:    user.CreatedAt,
	}

	// If this write fails the credential record above is orphaned: the
	// account can log in but has no profile document. Known window, no
	// compensating transaction.
	if err := a.db.SaveProfile(ctx, profile); err != nil {
		log.Printf("UserActor: profile write failed after account creation for %s: %v", user.ID, err)
		context.Respond(utils.NewDatabaseError("create profile", err))
		return
	}

	a.metrics.AddOperationLatency("register_user", time.Since(startTime))
	context.Respond(profile)
}

func (a *UserActor) handleLogin(context actor.Context, msg *LoginMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	user, err := a.db.GetUserByEmail(ctx, msg.Email)
	if err != nil {
		context.Respond(&LoginResult{
			Success: false,
			Error:   "Invalid credentials",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(msg.Password)); err != nil {
		context.Respond(&LoginResult{
			Success: false,
			Error:   "Invalid credentials",
		})
		return
	}

	// Role is resolved once per login and carried in the session token
	// from here on.
	role := models.RoleMember
	if a.adminEmail != "" && user.Email == a.adminEmail {
		role = models.RoleAdmin
	}

	a.metrics.AddOperationLatency("login", time.Since(startTime))
	context.Respond(&LoginResult{
		Success:  true,
		UserID:   user.ID,
		Nickname: user.DisplayName,
		Email:    user.Email,
		Role:     role,
	})
}

func (a *UserActor) handleGetProfile(context actor.Context, msg *GetProfileMsg) {
	ctx := stdctx.Background()

	profile, err := a.db.GetProfile(ctx, msg.UID)
	if err != nil {
		if appErr, ok := err.(*utils.AppError); ok {
			context.Respond(appErr)
			return
		}
		context.Respond(utils.NewDatabaseError("get profile", err))
		return
	}

	context.Respond(profile)
}

// handleUpdateNickname renames the owning user: the credential record's
// display name and the profile document's nickname change together.
// The uniqueness pre-check has the same race window as sign-up.
func (a *UserActor) handleUpdateNickname(context actor.Context, msg *UpdateNicknameMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	if msg.Nickname == "" {
		context.Respond(utils.NewValidationError("Nickname is required"))
		return
	}

	profile, err := a.db.GetProfile(ctx, msg.UID)
	if err != nil {
		if appErr, ok := err.(*utils.AppError); ok {
			context.Respond(appErr)
			return
		}
		context.Respond(utils.NewDatabaseError("get profile", err))
		return
	}

	if msg.Nickname == profile.Nickname {
		context.Respond(profile)
		return
	}

	taken, err := a.db.IsNicknameTaken(ctx, msg.Nickname)
	if err != nil {
		context.Respond(utils.NewDatabaseError("check nickname", err))
		return
	}
	if taken {
		context.Respond(utils.NewAppError(utils.ErrNicknameTaken, "Nickname is already in use", nil))
		return
	}

	user, err := a.db.GetUser(ctx, msg.UID)
	if err != nil {
		context.Respond(utils.NewDatabaseError("get account", err))
		return
	}

	user.DisplayName = msg.Nickname
	if err := a.db.SaveUser(ctx, user); err != nil {
		context.Respond(utils.NewDatabaseError("update account", err))
		return
	}

	// If this write fails the two records disagree on the name until the
	// next successful update. Same window as sign-up, surfaced not
	// repaired.
	profile.Nickname = msg.Nickname
	if err := a.db.SaveProfile(ctx, profile); err != nil {
		log.Printf("UserActor: profile write failed after rename for %s: %v", msg.UID, err)
		context.Respond(utils.NewDatabaseError("update profile", err))
		return
	}

	a.metrics.AddOperationLatency("update_nickname", time.Since(startTime))
	context.Respond(profile)
}

// handleDeleteAccount removes the profile document, then the credential
// record. If the second delete fails the profile is already gone while
// the credential still works; the failure is surfaced, not repaired.
func (a *UserActor) handleDeleteAccount(context actor.Context, msg *DeleteAccountMsg) {
	ctx := stdctx.Background()

	if _, err := a.db.GetUser(ctx, msg.UID); err != nil {
		context.Respond(utils.NewUnauthorizedError("no such account"))
		return
	}

	if err := a.db.DeleteProfile(ctx, msg.UID); err != nil {
		context.Respond(utils.NewDatabaseError("delete profile", err))
		return
	}

	if err := a.db.DeleteUser(ctx, msg.UID); err != nil {
		log.Printf("UserActor: credential delete failed after profile removal for %s: %v", msg.UID, err)
		context.Respond(utils.NewDatabaseError("delete account", err))
		return
	}

	context.Respond(&AccountDeleted{UID: msg.UID})
}
