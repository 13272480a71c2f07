package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/terraincognita07/ciclo/internal/models"
)

const (
	MaxEmailLength    = 255
	MinPasswordLength = 6
	MaxPasswordLength = 100
	MinNameLength     = 2
	MaxNameLength     = 100
)

type AuthMode int

const (
	ModeSignIn AuthMode = iota
	ModeSignUp
)

func (mode AuthMode) String() string {
	if mode == ModeSignUp {
		return "sign_up"
	}
	return "sign_in"
}

// Authenticator is the account backend the auth form submits to.
type Authenticator interface {
	SignIn(ctx context.Context, email string, password string) (models.User, error)
	SignUp(ctx context.Context, email string, password string, name string) (models.User, error)
}

type SubmitReason string

const (
	ReasonValidation         SubmitReason = "validation"
	ReasonInFlight           SubmitReason = "in_flight"
	ReasonInvalidCredentials SubmitReason = "invalid_credentials"
	ReasonEmailTaken         SubmitReason = "email_taken"
	ReasonRejected           SubmitReason = "rejected"
	ReasonUnexpected         SubmitReason = "unexpected"
)

var ErrSubmitInFlight = errors.New("submit already in progress")

// SubmitError is the user-facing outcome of a failed submit.
type SubmitError struct {
	Reason  SubmitReason
	Title   string
	Message string
	Cause   error
}

func (err *SubmitError) Error() string {
	return err.Message
}

func (err *SubmitError) Unwrap() error {
	return err.Cause
}

type AuthInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Name     string `json:"name" form:"name"`
}

type Result struct {
	Redirect    string
	User        models.User
	Title       string
	Description string
}

type AuthForm struct {
	auth Authenticator

	mu         sync.Mutex
	mode       AuthMode
	input      AuthInput
	submitting bool
}

func NewAuthForm(auth Authenticator, mode AuthMode) *AuthForm {
	return &AuthForm{auth: auth, mode: mode}
}

func (form *AuthForm) Mode() AuthMode {
	form.mu.Lock()
	defer form.mu.Unlock()
	return form.mode
}

func (form *AuthForm) SetMode(mode AuthMode) {
	form.mu.Lock()
	defer form.mu.Unlock()
	form.mode = mode
}

func (form *AuthForm) Toggle() {
	form.mu.Lock()
	defer form.mu.Unlock()
	if form.mode == ModeSignIn {
		form.mode = ModeSignUp
	} else {
		form.mode = ModeSignIn
	}
}

func (form *AuthForm) SetInput(input AuthInput) {
	form.mu.Lock()
	defer form.mu.Unlock()
	form.input = input
}

func (form *AuthForm) Submitting() bool {
	form.mu.Lock()
	defer form.mu.Unlock()
	return form.submitting
}

// Validate returns the message of the first violated rule, checking email,
// then password, then name (sign-up only).
func (form *AuthForm) Validate() error {
	form.mu.Lock()
	mode, input := form.mode, form.input
	form.mu.Unlock()
	return validateAuthInput(mode, input)
}

func validateAuthInput(mode AuthMode, input AuthInput) error {
	email := strings.TrimSpace(input.Email)
	if !isBareEmail(email) {
		return errors.New("Email inválido")
	}
	if utf8.RuneCountInString(email) > MaxEmailLength {
		return fmt.Errorf("Email deve ter no máximo %d caracteres", MaxEmailLength)
	}

	passwordLength := utf8.RuneCountInString(input.Password)
	if passwordLength < MinPasswordLength {
		return fmt.Errorf("Senha deve ter no mínimo %d caracteres", MinPasswordLength)
	}
	if passwordLength > MaxPasswordLength {
		return fmt.Errorf("Senha deve ter no máximo %d caracteres", MaxPasswordLength)
	}

	if mode != ModeSignUp {
		return nil
	}
	nameLength := utf8.RuneCountInString(strings.TrimSpace(input.Name))
	if nameLength < MinNameLength {
		return fmt.Errorf("Nome deve ter no mínimo %d caracteres", MinNameLength)
	}
	if nameLength > MaxNameLength {
		return fmt.Errorf("Nome deve ter no máximo %d caracteres", MaxNameLength)
	}
	return nil
}

func isBareEmail(email string) bool {
	if email == "" {
		return false
	}
	address, err := mail.ParseAddress(email)
	return err == nil && address.Address == email
}

// Submit validates the form and delegates to the Authenticator. Submitting
// is set for the duration of the call and always cleared afterwards, even
// when the Authenticator panics.
func (form *AuthForm) Submit(ctx context.Context) (result Result, err error) {
	form.mu.Lock()
	if form.submitting {
		form.mu.Unlock()
		return Result{}, &SubmitError{Reason: ReasonInFlight, Title: "Aguarde", Message: "Aguarde a solicitação anterior terminar.", Cause: ErrSubmitInFlight}
	}
	form.submitting = true
	mode, input := form.mode, form.input
	form.mu.Unlock()

	defer func() {
		if recovered := recover(); recovered != nil {
			log.Printf("auth form: recovered panic during %s: %v", mode, recovered)
			result = Result{}
			err = &SubmitError{Reason: ReasonUnexpected, Title: "Erro", Message: "Algo deu errado. Tente novamente."}
		}
		form.mu.Lock()
		form.submitting = false
		form.mu.Unlock()
	}()

	if validationErr := validateAuthInput(mode, input); validationErr != nil {
		return Result{}, &SubmitError{Reason: ReasonValidation, Title: "Erro de validação", Message: validationErr.Error(), Cause: validationErr}
	}

	email := strings.TrimSpace(input.Email)
	if mode == ModeSignIn {
		user, signInErr := form.auth.SignIn(ctx, email, input.Password)
		if signInErr != nil {
			return Result{}, signInError(signInErr)
		}
		return Result{Redirect: "/", User: user, Title: "Bem-vinda de volta! 💕", Description: "Login realizado com sucesso"}, nil
	}

	user, signUpErr := form.auth.SignUp(ctx, email, input.Password, strings.TrimSpace(input.Name))
	if signUpErr != nil {
		return Result{}, signUpError(signUpErr)
	}
	return Result{Redirect: "/", User: user, Title: "Conta criada com sucesso! 🎉", Description: "Bem-vinda ao Ciclo Feminino!"}, nil
}

func signInError(err error) *SubmitError {
	if errors.Is(err, ErrInvalidCredentials) {
		return &SubmitError{Reason: ReasonInvalidCredentials, Title: "Erro ao entrar", Message: "Email ou senha incorretos", Cause: err}
	}
	return &SubmitError{Reason: ReasonRejected, Title: "Erro ao entrar", Message: err.Error(), Cause: err}
}

func signUpError(err error) *SubmitError {
	if errors.Is(err, ErrEmailAlreadyRegistered) {
		return &SubmitError{Reason: ReasonEmailTaken, Title: "Email já cadastrado", Message: "Este email já possui uma conta. Tente fazer login.", Cause: err}
	}
	return &SubmitError{Reason: ReasonRejected, Title: "Erro ao criar conta", Message: err.Error(), Cause: err}
}
