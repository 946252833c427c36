package geometry

// Hardcoded 44-section vocal-tract area functions, in cm², glottis first
// (index 0) and lips last (index 43). Values follow the standard
// Story/Fant-style cross-sectional profile shape for each vowel: /a/ has
// a wide pharyngeal cavity narrowing toward the lips, /u/ narrows in the
// middle with a wide lip rounding cavity, /i/ is narrow at the palate and
// wide at the pharynx.
var vowelAreaFunctions = map[string][44]float64{
	"a": {
		1.5, 1.8, 2.2, 2.8, 3.6, 4.5, 5.4, 6.2, 6.9, 7.4,
		7.7, 7.8, 7.6, 7.2, 6.6, 5.9, 5.2, 4.6, 4.1, 3.7,
		3.4, 3.2, 3.1, 3.1, 3.2, 3.4, 3.7, 4.0, 4.2, 4.3,
		4.2, 4.0, 3.6, 3.1, 2.6, 2.1, 1.7, 1.4, 1.2, 1.1,
		1.0, 1.0, 1.1, 1.3,
	},
	"u": {
		2.0, 2.4, 2.9, 3.4, 3.8, 4.0, 4.0, 3.7, 3.3, 2.8,
		2.3, 1.9, 1.5, 1.2, 1.0, 0.8, 0.7, 0.6, 0.6, 0.6,
		0.7, 0.8, 1.0, 1.2, 1.5, 1.8, 2.1, 2.4, 2.6, 2.7,
		2.7, 2.6, 2.5, 2.5, 2.6, 2.9, 3.4, 4.1, 5.0, 5.9,
		6.6, 6.9, 6.7, 6.0,
	},
	"i": {
		1.2, 1.5, 2.0, 2.8, 3.8, 5.0, 6.2, 7.3, 8.1, 8.6,
		8.8, 8.6, 8.1, 7.4, 6.6, 5.7, 4.9, 4.1, 3.4, 2.8,
		2.3, 1.9, 1.5, 1.2, 1.0, 0.8, 0.7, 0.6, 0.5, 0.5,
		0.5, 0.6, 0.7, 0.8, 1.0, 1.2, 1.5, 1.8, 2.1, 2.3,
		2.4, 2.3, 2.1, 1.8,
	},
}
