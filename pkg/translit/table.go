package translit

// Range of the Mongolian block covered by the table.
const (
	tableStart rune = 0x180A
	tableEnd   rune = 0x1842
)

// glyph is one table slot. strict is the phonemic rendering, norm the
// normalized one. A slot with set == false passes the rune through.
type glyph struct {
	strict string
	norm   string
	set    bool
}

func same(s string) glyph { return glyph{strict: s, norm: s, set: true} }
func split(strict, norm string) glyph { return glyph{strict: strict, norm: norm, set: true} }

// table is indexed by r - tableStart. It is never written after init.
var table = [tableEnd - tableStart + 1]glyph{
	// Free variation selectors: kept in strict mode, dropped when normalized.
	0x180A - tableStart: split("\u180a", ""),
	0x180B - tableStart: split("\u180b", ""),
	0x180C - tableStart: split("\u180c", ""),
	0x180D - tableStart: split("\u180d", ""),
	// Vowel separator.
	0x180E - tableStart: split(" ", ""),
	0x180F - tableStart: same("0"),

	// Digits.
	0x1810 - tableStart: same("0"),
	0x1811 - tableStart: same("1"),
	0x1812 - tableStart: same("2"),
	0x1813 - tableStart: same("3"),
	0x1814 - tableStart: same("4"),
	0x1815 - tableStart: same("5"),
	0x1816 - tableStart: same("6"),
	0x1817 - tableStart: same("7"),
	0x1818 - tableStart: same("8"),
	0x1819 - tableStart: same("9"),

	// Vowels.
	0x1820 - tableStart: same("a"),
	0x1821 - tableStart: same("e"),
	0x1822 - tableStart: same("i"),
	0x1823 - tableStart: same("o"),
	0x1824 - tableStart: split("u", "o"),
	0x1825 - tableStart: same("ö"),
	0x1826 - tableStart: split("ü", "ö"),

	// Consonants.
	0x1828 - tableStart: same("n"),
	0x1829 - tableStart: same("ng"),
	0x182A - tableStart: same("b"),
	0x182B - tableStart: same("p"),
	0x182C - tableStart: same("q"),
	0x182D - tableStart: same("g"),
	0x182E - tableStart: same("m"),
	0x182F - tableStart: same("l"),
	0x1830 - tableStart: same("s"),
	0x1831 - tableStart: same("š"),
	0x1832 - tableStart: split("t", "d"),
	0x1833 - tableStart: same("d"),
	0x1834 - tableStart: same("č"),
	0x1835 - tableStart: same("j"),
	0x1836 - tableStart: same("y"),
	0x1837 - tableStart: same("r"),
	0x1838 - tableStart: same("w"),
	0x1839 - tableStart: same("f"),
	0x183A - tableStart: same("k"),
	0x183B - tableStart: same("k"),
	0x183C - tableStart: same("c"),
	0x183D - tableStart: same("z"),
	0x183E - tableStart: same("h"),
	0x183F - tableStart: same("ž"),
	0x1840 - tableStart: same("č"),
	0x1841 - tableStart: same("r"),
	0x1842 - tableStart: same("w"),
}

// lookup returns the rendering of r and whether the table knows it.
func lookup(r rune, normalize bool) (string, bool) {
	if r < tableStart || r > tableEnd {
		return "", false
	}
	g := table[r-tableStart]
	if !g.set {
		return "", false
	}
	if normalize {
		return g.norm, true
	}
	return g.strict, true
}
