package dashboard

import (
	"sort"
	"strings"
)

// topWords bounds the word cloud payload.
const topWords = 100

// stopWords are Italian function words (plus common legalese abbreviations)
// excluded from the word cloud.
var stopWords = map[string]bool{
	"di": true, "a": true, "da": true, "in": true, "con": true, "su": true,
	"per": true, "tra": true, "fra": true, "il": true, "lo": true, "la": true,
	"i": true, "gli": true, "le": true, "un": true, "uno": true, "una": true,
	"e": true, "o": true, "se": true, "ma": true, "che": true, "non": true,
	"del": true, "della": true, "dei": true, "delle": true, "al": true,
	"allo": true, "alla": true, "ai": true, "agli": true, "alle": true,
	"dal": true, "dallo": true, "dalla": true, "dai": true, "dagli": true,
	"dalle": true, "nel": true, "nello": true, "nella": true, "nei": true,
	"negli": true, "nelle": true, "vol": true, "n.": true, "n": true,
	"art.": true, "art": true,
}

const punctuation = ".,/#!$%^&*;:{}=-_`~()"

// BuildWordCloud computes the most frequent words across the descriptions,
// lowercased, punctuation stripped, stop words and short tokens dropped.
// Ties break alphabetically so the output is deterministic.
func BuildWordCloud(descriptions []string, limit int) []WordCount {
	counts := map[string]int{}

	for _, desc := range descriptions {
		if desc == "" {
			continue
		}
		cleaned := strings.ToLower(desc)
		cleaned = strings.Map(func(r rune) rune {
			if strings.ContainsRune(punctuation, r) {
				return -1
			}
			return r
		}, cleaned)

		for _, word := range strings.Fields(cleaned) {
			if len(word) <= 2 || stopWords[word] {
				continue
			}
			counts[word]++
		}
	}

	cloud := make([]WordCount, 0, len(counts))
	for word, count := range counts {
		cloud = append(cloud, WordCount{Value: word, Count: count})
	}

	sort.Slice(cloud, func(i, j int) bool {
		if cloud[i].Count != cloud[j].Count {
			return cloud[i].Count > cloud[j].Count
		}
		return cloud[i].Value < cloud[j].Value
	})

	if len(cloud) > limit {
		cloud = cloud[:limit]
	}
	return cloud
}
