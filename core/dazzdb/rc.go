// core/dazzdb/rc.go
package dazzdb

var complement [256]byte

func init() {
	for i := range complement {
		complement[i] = byte(i)
	}
	pairs := []byte("acgt" + "ACGT")
	comps := []byte("tgca" + "TGCA")
	for i, b := range pairs {
		complement[b] = comps[i]
	}
}

// Complement reverse-complements seq in place.
func Complement(seq []byte) {
	i, j := 0, len(seq)-1
	for i < j {
		seq[i], seq[j] = complement[seq[j]], complement[seq[i]]
		i++
		j--
	}
	if i == j {
		seq[i] = complement[seq[i]]
	}
}
