package translate

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/medcatalog/internal/domain"
)

// lexicon holds the per-language wording of the template generator.
type lexicon struct {
	types      map[string]string
	subtypes   map[string]string
	features   map[string]string
	procedures map[string]string
	materials  map[string]string
	// featureSentences has no entry for straight.
	featureSentences map[string]string

	fallbackName func(manufacturer string) string
	nameOrder    func(typ, subtype, feature string) []string
	length       func(total, active string) string
	angle        func(angle string) string
	closing      func(manufacturer string) string
}

var french = lexicon{
	types: map[string]string{
		"forceps":        "Pince",
		"scissors":       "Ciseaux",
		"knife":          "Couteau",
		"spatula":        "Spatule",
		"hook":           "Crochet",
		"cannula":        "Canule",
		"marker":         "Marqueur",
		"caliper":        "Compas",
		"speculum":       "Spéculum",
		"ophthalmoscope": "Ophtalmoscope",
		"otoscope":       "Otoscope",
		"tonometer":      "Tonomètre",
		"slit-lamp":      "Lampe à Fente",
	},
	subtypes: map[string]string{
		"capsulorhexis":   "à Capsulorhexis",
		"tying":           "de Nouage",
		"colibri":         "Type Colibri",
		"vannas":          "de Vannas",
		"westcott":        "de Westcott",
		"iris":            "à Iris",
		"crescent":        "Croissant",
		"slit":            "à Fente",
		"phaco":           "pour Phacoémulsification",
		"nucleus":         "à Noyau",
		"sinsky":          "de Sinsky",
		"hydrodissection": "pour Hydrodissection",
		"irrigation":      "d'Irrigation",
		"axis":            "de Marquage d'Axe",
		"toric":           "Torique",
		"castroviejo":     "de Castroviejo",
		"barraquer":       "de Barraquer",
		"lieberman":       "de Lieberman",
		"pocket":          "de Poche",
		"wireless":        "Sans Fil",
		"fiber-optic":     "à Fibre Optique",
		"non-contact":     "Sans Contact",
		"applanation":     "à Aplanation",
		"portable":        "Portable",
	},
	features: map[string]string{
		"curved":   "Courbé",
		"straight": "Droit",
		"angled":   "Angulé",
		"serrated": "Dentelé",
	},
	procedures: map[string]string{
		"cataract":   "Instrument essentiel pour la chirurgie de la cataracte.",
		"vitrectomy": "Conçu spécifiquement pour la vitrectomie.",
		"retinal":    "Utilisé dans la chirurgie du décollement de rétine.",
		"corneal":    "Idéal pour la chirurgie cornéenne et la kératoplastie.",
		"glaucoma":   "Instrument spécialisé pour le traitement du glaucome.",
	},
	materials: map[string]string{
		"titanium":        "Fabriqué en titane de haute qualité pour une durabilité maximale.",
		"stainless-steel": "En acier inoxydable chirurgical de qualité supérieure.",
	},
	featureSentences: map[string]string{
		"serrated": "Mâchoires dentelées pour une prise sûre.",
		"curved":   "Conception courbée pour une manipulation précise.",
		"angled":   "Design angulaire pour un accès facilité.",
	},
	fallbackName: func(m string) string { return "Instrument " + m },
	nameOrder: func(typ, subtype, feature string) []string {
		return []string{typ, subtype, feature}
	},
	length: func(total, active string) string {
		if active == "" {
			return fmt.Sprintf("Longueur totale de %s.", total)
		}
		return fmt.Sprintf("Longueur totale de %s avec partie active de %s.", total, active)
	},
	angle: func(a string) string { return fmt.Sprintf("Angle de %s pour un accès optimal.", a) },
	closing: func(m string) string {
		return fmt.Sprintf("Qualité %s garantie pour une performance chirurgicale optimale.", m)
	},
}

var english = lexicon{
	types: map[string]string{
		"forceps":        "Forceps",
		"scissors":       "Scissors",
		"knife":          "Knife",
		"spatula":        "Spatula",
		"hook":           "Hook",
		"cannula":        "Cannula",
		"marker":         "Marker",
		"caliper":        "Caliper",
		"speculum":       "Speculum",
		"ophthalmoscope": "Ophthalmoscope",
		"otoscope":       "Otoscope",
		"tonometer":      "Tonometer",
		"slit-lamp":      "Slit Lamp",
	},
	subtypes: map[string]string{
		"capsulorhexis":   "Capsulorhexis",
		"tying":           "Tying",
		"colibri":         "Colibri Type",
		"vannas":          "Vannas",
		"westcott":        "Westcott",
		"iris":            "Iris",
		"crescent":        "Crescent",
		"slit":            "Slit",
		"phaco":           "Phaco",
		"nucleus":         "Nucleus",
		"sinsky":          "Sinsky",
		"hydrodissection": "Hydrodissection",
		"irrigation":      "Irrigation",
		"axis":            "Axis Marking",
		"toric":           "Toric",
		"castroviejo":     "Castroviejo",
		"barraquer":       "Barraquer",
		"lieberman":       "Lieberman",
		"pocket":          "Pocket",
		"wireless":        "Wireless",
		"fiber-optic":     "Fiber Optic",
		"non-contact":     "Non-Contact",
		"applanation":     "Applanation",
		"portable":        "Portable",
	},
	features: map[string]string{
		"curved":   "Curved",
		"straight": "Straight",
		"angled":   "Angled",
		"serrated": "Serrated",
	},
	procedures: map[string]string{
		"cataract":   "Essential instrument for cataract surgery.",
		"vitrectomy": "Specifically designed for vitrectomy procedures.",
		"retinal":    "Used in retinal detachment surgery.",
		"corneal":    "Ideal for corneal surgery and keratoplasty.",
		"glaucoma":   "Specialized instrument for glaucoma treatment.",
	},
	materials: map[string]string{
		"titanium":        "Made from high-quality titanium for maximum durability.",
		"stainless-steel": "Premium surgical stainless steel construction.",
	},
	featureSentences: map[string]string{
		"serrated": "Serrated jaws for secure grip.",
		"curved":   "Curved design for precise manipulation.",
		"angled":   "Angled design for improved access.",
	},
	fallbackName: func(m string) string { return m + " Instrument" },
	nameOrder: func(typ, subtype, feature string) []string {
		return []string{subtype, feature, typ}
	},
	length: func(total, active string) string {
		if active == "" {
			return fmt.Sprintf("Total length of %s.", total)
		}
		return fmt.Sprintf("Total length of %s with %s active part.", total, active)
	},
	angle: func(a string) string { return fmt.Sprintf("%s angle for optimal access.", a) },
	closing: func(m string) string {
		return fmt.Sprintf("%s quality guaranteed for optimal surgical performance.", m)
	},
}

func lexiconFor(lang domain.Language) *lexicon {
	if lang == domain.LanguageEN {
		return &english
	}
	return &french
}

// Generator renders catalog names and descriptions from a ProductInfo.
// Output depends only on its inputs.
type Generator struct{}

// NewGenerator creates a Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Name renders a product name.
func (g *Generator) Name(info ProductInfo, lang domain.Language, manufacturer string) string {
	lex := lexiconFor(lang)
	manufacturer = strings.ToUpper(strings.TrimSpace(manufacturer))

	if info.Type == "" {
		return strings.TrimSpace(lex.fallbackName(manufacturer))
	}

	parts := lex.nameOrder(lookup(lex.types, info.Type), lookup(lex.subtypes, info.Subtype), lookup(lex.features, info.Feature))
	if len(info.Measurements) > 0 {
		parts = append(parts, info.Measurements[0])
	}
	parts = append(parts, info.Angle)
	return joinNonEmpty(parts, " ")
}

// Description renders a product description. Sections without data are
// omitted.
func (g *Generator) Description(info ProductInfo, lang domain.Language, manufacturer string) string {
	lex := lexiconFor(lang)
	manufacturer = strings.ToUpper(strings.TrimSpace(manufacturer))

	sentences := []string{lex.procedures[info.Procedure]}
	switch len(info.Measurements) {
	case 0:
	case 1:
		sentences = append(sentences, lex.length(info.Measurements[0], ""))
	default:
		sentences = append(sentences, lex.length(info.Measurements[0], info.Measurements[1]))
	}
	if info.Angle != "" {
		sentences = append(sentences, lex.angle(info.Angle))
	}
	sentences = append(sentences, lex.materials[info.Material], lex.featureSentences[info.Feature])
	if manufacturer != "" {
		sentences = append(sentences, lex.closing(manufacturer))
	}
	return joinNonEmpty(sentences, " ")
}

// Generate extracts a ProductInfo from the product's current texts and
// renders fresh French and English texts. Spec sheets are kept.
func (g *Generator) Generate(p domain.ProductTexts) (fr, en domain.LocalizedText) {
	blob := strings.Join([]string{
		p.Reference, p.FR.Name, p.EN.Name, p.FR.Description, p.EN.Description,
	}, " ")
	info := Extract(blob)

	fr = domain.LocalizedText{
		Name:        g.Name(info, domain.LanguageFR, p.Manufacturer),
		Description: g.Description(info, domain.LanguageFR, p.Manufacturer),
		SpecSheet:   p.FR.SpecSheet,
	}
	en = domain.LocalizedText{
		Name:        g.Name(info, domain.LanguageEN, p.Manufacturer),
		Description: g.Description(info, domain.LanguageEN, p.Manufacturer),
		SpecSheet:   p.EN.SpecSheet,
	}
	return fr, en
}

// lookup returns the wording for key, or key itself when the table has
// no entry.
func lookup(table map[string]string, key string) string {
	if v, ok := table[key]; ok {
		return v
	}
	return key
}

func joinNonEmpty(parts []string, sep string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
