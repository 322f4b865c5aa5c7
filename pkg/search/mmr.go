package search

import (
	"fmt"
	"math"
)

// MaximalMarginalRelevance implements the Maximal Marginal Relevance algorithm.
// It takes a query embedding, a list of embeddings, a lambda multiplier, and a
// number of results to return. It returns a list of indices of the embeddings
// that are most relevant to the query while least similar to those already
// selected.
// See https://www.cs.cmu.edu/~jgc/publication/The_Use_MMR_Diversity_Based_LTMIR_1998.pdf
func MaximalMarginalRelevance(
	queryEmbedding []float32,
	embeddingList [][]float32,
	lambdaMult float64,
	k int,
) ([]int, error) {
	if k <= 0 || len(embeddingList) == 0 {
		return []int{}, nil
	}

	for i, e := range embeddingList {
		if len(e) != len(queryEmbedding) {
			return nil, fmt.Errorf(
				"embedding %d has %d dimensions, query has %d",
				i, len(e), len(queryEmbedding),
			)
		}
	}

	similarityToQuery := make([]float64, len(embeddingList))
	mostSimilar := 0
	for i, e := range embeddingList {
		similarityToQuery[i] = CosineSimilarity(queryEmbedding, e)
		if similarityToQuery[i] > similarityToQuery[mostSimilar] {
			mostSimilar = i
		}
	}

	idxs := []int{mostSimilar}
	selected := map[int]bool{mostSimilar: true}

	for len(idxs) < min(k, len(embeddingList)) {
		bestScore := math.Inf(-1)
		idxToAdd := -1
		for i, queryScore := range similarityToQuery {
			if selected[i] {
				continue
			}
			redundantScore := math.Inf(-1)
			for _, j := range idxs {
				redundantScore = math.Max(redundantScore, CosineSimilarity(embeddingList[i], embeddingList[j]))
			}
			equationScore := lambdaMult*queryScore - (1-lambdaMult)*redundantScore
			if equationScore > bestScore {
				bestScore = equationScore
				idxToAdd = i
			}
		}
		idxs = append(idxs, idxToAdd)
		selected[idxToAdd] = true
	}

	return idxs, nil
}
