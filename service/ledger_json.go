package service

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// legacyLedgerKeys 旧前端提交的法语字段名，英文字段同时出现时以英文为准
type legacyLedgerKeys struct {
	DateEntree      *string          `json:"date_entree"`
	DateSortie      *string          `json:"date_sortie"`
	TypeOffrande    *string          `json:"type_offrande"`
	TypeTransaction *string          `json:"type_transaction"`
	Montant         *decimal.Decimal `json:"montant"`
	Devise          *string          `json:"devise"`
	Temoin          *string          `json:"temoin"`
	Commentaires    *string          `json:"commentaires"`
	UtilisateurID   *uint            `json:"utilisateur_id"`
}

func (k legacyLedgerKeys) date() *string {
	if k.DateEntree != nil {
		return k.DateEntree
	}
	return k.DateSortie
}

func (k legacyLedgerKeys) kind() *string {
	if k.TypeOffrande != nil {
		return k.TypeOffrande
	}
	return k.TypeTransaction
}

// UnmarshalJSON 同时接受英文与法语字段名
func (in *LedgerInput) UnmarshalJSON(b []byte) error {
	type plain LedgerInput
	var aux struct {
		plain
		legacyLedgerKeys
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	*in = LedgerInput(aux.plain)
	legacy := aux.legacyLedgerKeys
	fillString(&in.Date, legacy.date())
	fillString(&in.Type, legacy.kind())
	fillString(&in.Currency, legacy.Devise)
	fillString(&in.Witness, legacy.Temoin)
	fillString(&in.Comments, legacy.Commentaires)
	fillPtr(&in.Amount, legacy.Montant)
	fillPtr(&in.UserID, legacy.UtilisateurID)
	return nil
}

// UnmarshalJSON 同时接受英文与法语字段名
func (p *LedgerPatch) UnmarshalJSON(b []byte) error {
	type plain LedgerPatch
	var aux struct {
		plain
		legacyLedgerKeys
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	*p = LedgerPatch(aux.plain)
	legacy := aux.legacyLedgerKeys
	fillPtr(&p.Date, legacy.date())
	fillPtr(&p.Type, legacy.kind())
	fillPtr(&p.Amount, legacy.Montant)
	fillPtr(&p.Currency, legacy.Devise)
	fillPtr(&p.Witness, legacy.Temoin)
	fillPtr(&p.Comments, legacy.Commentaires)
	return nil
}

func fillString(dst *string, v *string) {
	if *dst == "" && v != nil {
		*dst = *v
	}
}

func fillPtr[T any](dst **T, v *T) {
	if *dst == nil {
		*dst = v
	}
}
