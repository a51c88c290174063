package translate

import (
	"regexp"
	"strings"
)

// ProductInfo is what the template generator knows about an instrument.
type ProductInfo struct {
	Type         string
	Subtype      string
	Measurements []string
	Angle        string
	Material     string
	Feature      string
	Procedure    string
}

// tag assigns Value when any keyword occurs in the text.
type tag struct {
	keywords []string
	value    string
}

func (t tag) matches(text string) bool {
	for _, k := range t.keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// firstMatch returns the value of the first matching tag.
func firstMatch(tags []tag, text string) string {
	for _, t := range tags {
		if t.matches(text) {
			return t.value
		}
	}
	return ""
}

// typeTags are evaluated first-match-wins. Colibri forceps are often
// listed without the word forceps, so colibri precedes the generic entry.
var typeTags = []tag{
	{[]string{"colibri"}, "forceps"},
	{[]string{"forceps", "pince"}, "forceps"},
	{[]string{"scissors", "ciseaux"}, "scissors"},
	{[]string{"knife", "couteau"}, "knife"},
	{[]string{"spatula", "spatule"}, "spatula"},
	{[]string{"hook", "crochet"}, "hook"},
	{[]string{"cannula", "canule"}, "cannula"},
	{[]string{"marker", "marqueur"}, "marker"},
	{[]string{"caliper", "compas"}, "caliper"},
	{[]string{"speculum", "spéculum"}, "speculum"},
	{[]string{"ophthalmoscope", "ophtalmoscope"}, "ophthalmoscope"},
	{[]string{"otoscope"}, "otoscope"},
	{[]string{"tonometer", "tonomètre"}, "tonometer"},
	{[]string{"slit lamp", "lampe"}, "slit-lamp"},
}

var subtypeTags = map[string][]tag{
	"forceps": {
		{[]string{"capsulorhexis"}, "capsulorhexis"},
		{[]string{"tying"}, "tying"},
		{[]string{"colibri"}, "colibri"},
	},
	"scissors": {
		{[]string{"vannas"}, "vannas"},
		{[]string{"westcott"}, "westcott"},
		{[]string{"iris"}, "iris"},
	},
	"knife": {
		{[]string{"crescent"}, "crescent"},
		{[]string{"slit"}, "slit"},
		{[]string{"phaco"}, "phaco"},
	},
	"spatula": {
		{[]string{"iris"}, "iris"},
		{[]string{"nucleus"}, "nucleus"},
	},
	"hook": {
		{[]string{"iris"}, "iris"},
		{[]string{"sinsky"}, "sinsky"},
	},
	"cannula": {
		{[]string{"hydrodissection"}, "hydrodissection"},
		{[]string{"irrigation"}, "irrigation"},
	},
	"marker": {
		{[]string{"axis"}, "axis"},
		{[]string{"toric"}, "toric"},
	},
	"caliper": {
		{[]string{"castroviejo"}, "castroviejo"},
	},
	"speculum": {
		{[]string{"barraquer"}, "barraquer"},
		{[]string{"lieberman"}, "lieberman"},
	},
	"ophthalmoscope": {
		{[]string{"pocket"}, "pocket"},
		{[]string{"wireless"}, "wireless"},
	},
	"otoscope": {
		{[]string{"fiber"}, "fiber-optic"},
	},
	"tonometer": {
		{[]string{"non-contact"}, "non-contact"},
		{[]string{"applanation"}, "applanation"},
	},
	"slit-lamp": {
		{[]string{"portable"}, "portable"},
	},
}

var materialTags = []tag{
	{[]string{"titanium", "titane"}, "titanium"},
	{[]string{"stainless", "inox"}, "stainless-steel"},
}

var featureTags = []tag{
	{[]string{"curved", "courbé"}, "curved"},
	{[]string{"straight", "droit"}, "straight"},
	{[]string{"angled", "angulé"}, "angled"},
	{[]string{"serrated", "dentelé"}, "serrated"},
}

var procedureTags = []tag{
	{[]string{"cataract", "cataracte"}, "cataract"},
	{[]string{"vitrectomy", "vitrectomie"}, "vitrectomy"},
	{[]string{"retinal", "rétine"}, "retinal"},
	{[]string{"corneal", "cornée"}, "corneal"},
	{[]string{"glaucoma", "glaucome"}, "glaucoma"},
}

var (
	measurementPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s?(mm|cm|ml|cc|gauge|g)\b`)
	anglePattern       = regexp.MustCompile(`(\d+)\s?(?:°|deg|degrees)`)
)

// Extract classifies a free-text blob (reference, names, descriptions).
func Extract(blob string) ProductInfo {
	text := strings.ToLower(blob)

	info := ProductInfo{
		Type:      firstMatch(typeTags, text),
		Material:  firstMatch(materialTags, text),
		Feature:   firstMatch(featureTags, text),
		Procedure: firstMatch(procedureTags, text),
	}
	if info.Type != "" {
		info.Subtype = firstMatch(subtypeTags[info.Type], text)
	}

	for _, m := range measurementPattern.FindAllStringSubmatch(text, -1) {
		info.Measurements = append(info.Measurements, m[1]+m[2])
	}
	if m := anglePattern.FindStringSubmatch(text); m != nil {
		info.Angle = m[1] + "°"
	}
	return info
}
