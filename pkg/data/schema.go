package data

// Role tells whether a column is an input attribute or the label.
type Role string

const (
	RoleFeature Role = "Feature"
	RoleTarget  Role = "Target"
	RoleID      Role = "ID"
)

// Column names of the car evaluation dataset.
const (
	ColBuying  = "buying"
	ColMaint   = "maint"
	ColDoors   = "doors"
	ColPersons = "persons"
	ColLugBoot = "lug_boot"
	ColSafety  = "safety"
	ColClass   = "class"

	ColClassEncoded  = "class_encoded"
	ColBuyingEncoded = "buying_encoded"
	ColMaintEncoded  = "maint_encoded"
)

// ColumnSpec describes one categorical column and its declared domain.
// For ordered columns the domain is listed lowest first.
type ColumnSpec struct {
	Name    string
	Domain  []string
	Ordered bool
	Role    Role
}

// Contains reports whether v belongs to the declared domain.
func (c ColumnSpec) Contains(v string) bool {
	for _, d := range c.Domain {
		if d == v {
			return true
		}
	}
	return false
}

// Schema describes the structure of a dataset.
type Schema struct {
	Name    string
	Columns []ColumnSpec
}

// Column returns the spec for name.
func (s Schema) Column(name string) (ColumnSpec, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

// Names returns the column names in declaration order.
func (s Schema) Names() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Name
	}
	return out
}

var (
	PriceLevels  = []string{"low", "med", "high", "vhigh"}
	ClassLevels  = []string{"unacc", "acc", "good", "vgood"}
	SafetyLevels = []string{"low", "med", "high"}
	LugBootSizes = []string{"small", "med", "big"}
)

// CarEvaluation is the UCI car evaluation dataset (id 19).
var CarEvaluation = Schema{
	Name: "Car Evaluation",
	Columns: []ColumnSpec{
		{Name: ColBuying, Domain: PriceLevels, Ordered: true, Role: RoleFeature},
		{Name: ColMaint, Domain: PriceLevels, Ordered: true, Role: RoleFeature},
		{Name: ColDoors, Domain: []string{"2", "3", "4", "5more"}, Role: RoleFeature},
		{Name: ColPersons, Domain: []string{"2", "4", "more"}, Role: RoleFeature},
		{Name: ColLugBoot, Domain: LugBootSizes, Ordered: true, Role: RoleFeature},
		{Name: ColSafety, Domain: SafetyLevels, Ordered: true, Role: RoleFeature},
		{Name: ColClass, Domain: ClassLevels, Ordered: true, Role: RoleTarget},
	},
}
