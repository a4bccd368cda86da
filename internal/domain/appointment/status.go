package appointment

import "strings"

// ===============================
// Appointment Status
// ===============================

type Status string

const StatusPending Status = "Pendente"

// InitialStatus é o status de um agendamento recém-criado.
func InitialStatus() Status {
	return StatusPending
}

// NormalizeStatus aceita texto livre; vazio vira o status inicial.
func NormalizeStatus(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return string(InitialStatus())
	}
	return s
}
