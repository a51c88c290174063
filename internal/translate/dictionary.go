package translate

import "regexp"

// Term is one English to French terminology substitution.
type Term struct {
	English string
	French  string
}

// terms are applied in order, whole-word, on lowercased text. Identity
// entries (mm, iris, instrument, ...) are omitted.
var terms = []Term{
	// Instruments.
	{"forceps", "pinces"},
	{"scissors", "ciseaux"},
	{"trephine", "trépan"},
	{"punch", "perforatrice"},
	{"cannula", "canule"},
	{"spatula", "spatule"},
	{"knife", "couteau"},
	{"needle", "aiguille"},
	{"blade", "lame"},
	{"retractor", "écarteur"},
	{"speculum", "spéculum"},
	{"probe", "sonde"},
	{"clamp", "pince"},
	{"elevator", "élévateur"},

	// Descriptors.
	{"curved", "courbé(e)"},
	{"straight", "droit(e)"},
	{"angled", "angulé(e)"},
	{"bent", "plié(e)"},
	{"serrated", "dentelé(e)"},
	{"smooth", "lisse"},
	{"blunt", "émoussé(e)"},
	{"sharp", "aigu(e)"},
	{"fine", "fin(e)"},
	{"delicate", "délicat(e)"},
	{"heavy", "lourd(e)"},
	{"light", "léger(ère)"},
	{"double-ended", "à double extrémité"},
	{"single-use", "à usage unique"},
	{"disposable", "jetable"},
	{"reusable", "réutilisable"},

	// Measurements.
	{"inches", "pouces"},
	{"inch", "pouce"},
	{"gauge", "calibre"},

	// Actions.
	{"replacement", "remplacement"},
	{"removal", "retrait"},
	{"grasping", "préhension"},
	{"cutting", "coupe"},
	{"suturing", "suture"},
	{"clamping", "serrage"},

	// Anatomy.
	{"corneal", "cornéen(ne)"},
	{"scleral", "scléral(e)"},
	{"lens", "cristallin"},
	{"retinal", "rétinien(ne)"},
	{"vitreous", "vitré"},
	{"conjunctival", "conjonctival(e)"},
	{"lacrimal", "lacrymal(e)"},
	{"orbital", "orbitaire"},
	{"ophthalmic", "ophtalmique"},
	{"ocular", "oculaire"},
	{"intraocular", "intraoculaire"},
	{"extraocular", "extraoculaire"},

	// Prepositions and connectors.
	{"with", "avec"},
	{"for", "pour"},
	{"of", "de"},
	{"and", "et"},
	{"or", "ou"},
	{"in", "dans"},
	{"on", "sur"},
	{"at", "à"},
	{"by", "par"},
	{"from", "de"},
	{"through", "à travers"},
	{"during", "pendant"},
	{"after", "après"},
	{"before", "avant"},

	// Product types.
	{"model", "modèle"},
	{"design", "conception"},
	{"system", "système"},
	{"set", "ensemble"},
	{"tool", "outil"},
	{"device", "dispositif"},
	{"equipment", "équipement"},
}

// Rule is an idiom rewrite applied after the terminology pass.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
	// Note records which earlier substitution the pattern depends on.
	Note string
}

// rules run in order; several match text the terminology pass produced.
var rules = []Rule{
	{regexp.MustCompile(`(?i)(\w+)\s+pinces`), "Pinces ${1}", "forceps is already pinces; moves the noun first"},
	{regexp.MustCompile(`(?i)(\w+)\s+ciseaux`), "Ciseaux ${1}", "scissors is already ciseaux; moves the noun first"},
	{regexp.MustCompile(`(?i)(\d+)-mm`), "${1} mm", "independent"},
	{regexp.MustCompile(`(?i)(\d+)\s*inch(?:e(s))?`), "${1} pouce${2}", "catches digits glued to inch, which the word-bounded term misses"},
	{regexp.MustCompile(`(?i)swiss\s+modèle`), "modèle suisse", "model is already modèle"},
	{regexp.MustCompile(`(?i)mosquito`), "Moustique", "independent"},
	{regexp.MustCompile(`(?i)cross-action`), "à croisement", "independent"},
	{regexp.MustCompile(`(?i)dentelé\(e\)\s+jaws`), "mâchoires dentelées", "serrated is already dentelé(e)"},
	{regexp.MustCompile(`(?i)concave\s+jaws`), "mâchoires concaves", "independent"},
	{regexp.MustCompile(`(?i)remplacement\s+tip`), "pointe de remplacement", "replacement is already remplacement"},
	{regexp.MustCompile(`(?i)graft\s+insertion`), "insertion de greffe", "independent"},
	{regexp.MustCompile(`(?i)distal\s+control`), "contrôle distal", "independent"},
	{regexp.MustCompile(`(?i)ultra-thin\s+tip`), "pointe ultra-fine", "independent"},
}
