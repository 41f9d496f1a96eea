package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GenerateSessionID() string {
	return uuid.New().String()
}

func GenerateTransactionID() string {
	return fmt.Sprintf("tx_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

func (r *CredentialsRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" || r.Password == "" {
		return ErrMissingField
	}
	return nil
}
