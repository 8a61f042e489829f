package summarize

import (
	"math"

	"github.com/hyperifyio/clauseease/internal/preprocess"
)

// tfidfSums treats every sentence as a document and returns, per sentence,
// the sum of its L2-normalized TF-IDF vector. Terms are lower-cased words of
// two or more characters with English stopwords removed; idf is smoothed as
// ln((1+n)/(1+df)) + 1.
func tfidfSums(sentences []string) []float64 {
	n := len(sentences)
	counts := make([]map[string]int, n)
	df := map[string]int{}
	for i, s := range sentences {
		tf := map[string]int{}
		for _, term := range preprocess.Terms(s) {
			if preprocess.IsStopword(term) {
				continue
			}
			tf[term]++
		}
		for term := range tf {
			df[term]++
		}
		counts[i] = tf
	}

	sums := make([]float64, n)
	for i, tf := range counts {
		var norm, sum float64
		for term, c := range tf {
			w := float64(c) * idf(n, df[term])
			norm += w * w
			sum += w
		}
		if norm > 0 {
			sums[i] = sum / math.Sqrt(norm)
		}
	}
	return sums
}

func idf(n, df int) float64 {
	return math.Log(float64(1+n)/float64(1+df)) + 1
}

// minMax rescales xs into [0,1]. When every value is equal the result is all
// zeros.
func minMax(xs []float64) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	span := hi - lo
	if span == 0 {
		return out
	}
	for i, x := range xs {
		out[i] = (x - lo) / span
	}
	return out
}
