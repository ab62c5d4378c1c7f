// Package terms 从自由文本中提取关键词，用于构造搜索查询
package terms

import (
	"regexp"
	"sort"
	"strings"
)

// MaxTerms 返回关键词的最大数量
const MaxTerms = 5

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "but": {}, "by": {},
	"for": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "no": {}, "not": {}, "of": {},
	"on": {}, "or": {}, "such": {}, "that": {}, "the": {}, "their": {}, "then": {}, "there": {},
	"these": {}, "they": {}, "this": {}, "to": {}, "was": {}, "will": {}, "with": {},
}

// IsStopWord 判断是否为停用词
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

// Extract 提取出现频率最高的关键词
// 按频率降序排列，频率相同时按首次出现的顺序
func Extract(text string) []string {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if IsStopWord(word) {
			continue
		}
		if _, seen := counts[word]; !seen {
			order = append(order, word)
		}
		counts[word]++
	}

	// 稳定排序，频率相同的词保持首次出现顺序
	ranked := order
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})

	if len(ranked) > MaxTerms {
		ranked = ranked[:MaxTerms]
	}
	return ranked
}

// Query 将关键词拼接为单个搜索查询
func Query(terms []string) string {
	return strings.Join(terms, " ")
}
