package morph

const (
	waterResidue = "t4p"
	virtualSite  = 'm'
)

// ligandCoreBonds joins the sulfonamide, pyrazole, trifluoromethyl and phenyl
// fragments shared by both end states.
var ligandCoreBonds = [][2]string{
	{"n3", "hn1"},
	{"n3", "hn2"},
	{"n3", "s1"},
	{"s1", "o1"},
	{"s1", "o2"},
	{"s1", "c8"},
	{"c8", "c9"},
	{"c9", "c10"},
	{"c8", "c7"},
	{"c7", "c6"},
	{"c6", "c5"},
	{"c10", "c5"},
	{"c9", "h9"},
	{"c10", "h10"},
	{"c7", "h7"},
	{"c6", "h6"},
	{"c5", "n1"},
	{"n1", "n2"},
	{"n2", "c3"},
	{"c3", "c1"},
	{"c1", "c2"},
	{"c2", "n1"},
	{"c1", "h1"},
	{"c3", "c4"},
	{"c4", "f1"},
	{"c4", "f2"},
	{"c4", "f3"},
	{"c2", "c11"},
	{"c11", "c12"},
	{"c12", "c13"},
	{"c13", "c14"},
	{"c14", "c15"},
	{"c15", "c16"},
	{"c16", "c11"},
	{"c12", "h12"},
	{"c13", "h13"},
	{"c15", "h15"},
	{"c16", "h16"},
}

var waterBonds = [][2]string{
	{"o00", "h01"},
	{"o00", "h02"},
}

// morphGroup names the atoms and bonds of one end state that change with
// lambda.
type morphGroup struct {
	Name    string
	Residue string
	Atoms   []string
	Bonds   [][2]string
	// FadeIn groups become opaque as lambda goes to 1.
	FadeIn bool
	// Exclusive residues draw only their morph atoms; the rest overlaps the
	// other end state.
	Exclusive bool
	// Core residues also draw ligandCoreBonds.
	Core bool
}

var dualGroups = []morphGroup{
	{
		Name:    "ce1_morph",
		Residue: "ce1",
		Atoms:   []string{"c34", "h38", "h39", "h40"},
		Bonds:   [][2]string{{"c14", "c34"}, {"c34", "h38"}, {"c34", "h39"}, {"c34", "h40"}},
		Core:    true,
	},
	{
		Name:      "ce8_morph",
		Residue:   "ce8",
		Atoms:     []string{"o34", "h38"},
		Bonds:     [][2]string{{"c14", "o34"}, {"o34", "h38"}},
		FadeIn:    true,
		Exclusive: true,
	},
}

// Single topology: ce1's methyl (c34, h38-h40) turns into ce8's hydroxyl.
// h38 and h39 become dummy atoms; h40 becomes the hydroxyl hydrogen.
const (
	singleResidue = "ce1"

	CarbonOxygenLength   = 1.40
	OxygenHydrogenLength = 0.95
)

var (
	singleCoreResidues = []string{"ce1", "ce8"}
	singleKeyAtoms     = []string{"c14", "c34", "h38", "h39", "h40"}
)
