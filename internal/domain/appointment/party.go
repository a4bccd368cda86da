package appointment

import (
	"strings"

	"github.com/BruksfildServices01/solar-scheduler/internal/models"
)

type PartyKind int

const (
	InternalTechnicianParty PartyKind = iota + 1
	ExternalFieldTechnicianParty
)

// ResponsibleParty identifica quem executa o atendimento: um técnico do
// cadastro (por id) ou um técnico de campo externo (por nome). Dois
// responsáveis só são iguais dentro da mesma variante.
type ResponsibleParty struct {
	kind  PartyKind
	value string
}

func InternalTechnician(id string) ResponsibleParty {
	return ResponsibleParty{kind: InternalTechnicianParty, value: strings.TrimSpace(id)}
}

func ExternalFieldTechnician(name string) ResponsibleParty {
	return ResponsibleParty{kind: ExternalFieldTechnicianParty, value: NormalizeFieldTechnician(name)}
}

func (p ResponsibleParty) Kind() PartyKind { return p.kind }
func (p ResponsibleParty) Value() string   { return p.value }

func (p ResponsibleParty) IsZero() bool {
	return p.kind == 0 || p.value == ""
}

func (p ResponsibleParty) Equal(o ResponsibleParty) bool {
	return !p.IsZero() && p.kind == o.kind && p.value == o.value
}

// Key é usada como chave de lock.
func (p ResponsibleParty) Key() string {
	switch p.kind {
	case InternalTechnicianParty:
		return "technician:" + p.value
	case ExternalFieldTechnicianParty:
		return "field:" + p.value
	}
	return ""
}

func (p ResponsibleParty) String() string {
	return p.Key()
}

func NormalizeFieldTechnician(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// PartiesOf lista os responsáveis presentes no agendamento.
func PartiesOf(ap *models.Appointment) []ResponsibleParty {
	return Parties(ap.TechnicianID, ap.FieldTechnician)
}

func Parties(technicianID *string, fieldTechnician string) []ResponsibleParty {
	out := make([]ResponsibleParty, 0, 2)
	if technicianID != nil {
		if p := InternalTechnician(*technicianID); !p.IsZero() {
			out = append(out, p)
		}
	}
	if p := ExternalFieldTechnician(fieldTechnician); !p.IsZero() {
		out = append(out, p)
	}
	return out
}

func LockKeys(parties []ResponsibleParty) []string {
	keys := make([]string, 0, len(parties))
	for _, p := range parties {
		if k := p.Key(); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
