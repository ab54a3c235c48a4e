package medications

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category agrupa medicamentos por uso clínico.
type Category string

const (
	CategoryAnesthetics       Category = "anesthetics"
	CategoryAntibiotics       Category = "antibiotics"
	CategoryAntiparasitics    Category = "antiparasitics"
	CategoryEyeOintment       Category = "eye_ointment"
	CategoryBronchodilators   Category = "bronchodilators"
	CategorySupplementaryFeed Category = "supplementary_feed"
	CategoryOintment          Category = "ointment"
	CategoryExpectorants      Category = "expectorants"
	CategoryAnalgesics        Category = "analgesics"
	CategoryVaccines          Category = "vaccines"
	CategoryHormones          Category = "hormones"
	CategoryVitamins          Category = "vitamins"
	CategoryOther             Category = "other"
)

var categories = map[Category]struct{}{
	CategoryAnesthetics: {}, CategoryAntibiotics: {}, CategoryAntiparasitics: {},
	CategoryEyeOintment: {}, CategoryBronchodilators: {}, CategorySupplementaryFeed: {},
	CategoryOintment: {}, CategoryExpectorants: {}, CategoryAnalgesics: {},
	CategoryVaccines: {}, CategoryHormones: {}, CategoryVitamins: {}, CategoryOther: {},
}

func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

// Form es la forma farmacéutica. Vacío = no informado.
type Form string

const (
	FormTablet    Form = "tablet"
	FormCapsule   Form = "capsule"
	FormDrops     Form = "drops"
	FormSyrup     Form = "syrup"
	FormInjection Form = "injection"
	FormPaste     Form = "paste"
	FormPowder    Form = "powder"
	FormOintment  Form = "ointment"
	FormSpray     Form = "spray"
)

var forms = map[Form]struct{}{
	FormTablet: {}, FormCapsule: {}, FormDrops: {}, FormSyrup: {}, FormInjection: {},
	FormPaste: {}, FormPowder: {}, FormOintment: {}, FormSpray: {},
}

func (f Form) Valid() bool {
	if f == "" {
		return true
	}
	_, ok := forms[f]
	return ok
}

type DosageUnit string

const (
	UnitMg     DosageUnit = "mg"
	UnitG      DosageUnit = "g"
	UnitMcg    DosageUnit = "mcg"
	UnitPg     DosageUnit = "pg"
	UnitMl     DosageUnit = "ml"
	UnitL      DosageUnit = "l"
	UnitIU     DosageUnit = "IU"
	UnitPieces DosageUnit = "pcs"
	UnitDrops  DosageUnit = "drops"
	UnitPuff   DosageUnit = "puff"
	UnitSachet DosageUnit = "sachet"
	UnitPct    DosageUnit = "%"
)

var units = map[DosageUnit]struct{}{
	UnitMg: {}, UnitG: {}, UnitMcg: {}, UnitPg: {}, UnitMl: {}, UnitL: {},
	UnitIU: {}, UnitPieces: {}, UnitDrops: {}, UnitPuff: {}, UnitSachet: {}, UnitPct: {},
}

func (u DosageUnit) Valid() bool {
	if u == "" {
		return true
	}
	_, ok := units[u]
	return ok
}

// Medication es la raíz: cálculos de dosis y barcodes la referencian.
type Medication struct {
	ID string

	Name             string
	ActiveIngredient string

	Strength     string
	DosageAmount decimal.NullDecimal
	DosageUnit   DosageUnit

	Category     Category
	Form         Form
	Manufacturer string

	Description       string
	SideEffects       string
	Contraindications string
	Interactions      string
	Storage           string

	PrescriptionRequired bool
	DosageInstructions   []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DosageDisplay: "<cantidad> <unidad>" si ambos existen, si no la potencia libre.
func (m Medication) DosageDisplay() string {
	if m.DosageAmount.Valid && m.DosageUnit != "" {
		return m.DosageAmount.Decimal.String() + " " + string(m.DosageUnit)
	}
	return m.Strength
}

type ListFilter struct {
	Search string
	Page   int
	Limit  int
}

type Statistics struct {
	Total          int
	ByForm         []FormCount
	ByPrescription []PrescriptionCount
}

type FormCount struct {
	Form  Form
	Count int
}

type PrescriptionCount struct {
	PrescriptionRequired bool
	Count                int
}
