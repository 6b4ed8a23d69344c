package matching

import (
	"fmt"
	"sort"
)

// ClusterMember запись, участвующая в кластеризации
// Key - ключ уникальности записи, Label - нормализованная метка (может быть пустой)
type ClusterMember struct {
	Key   int
	Label string
}

// ClusterAssignment результат кластеризации для одной записи
type ClusterAssignment struct {
	ClusterID string
	Size      int
}

// ClusterBuilder строит кластеры как компоненты связности:
// записи с одинаковой меткой связаны, прошедшие порог пары меток связывают
// группы меток, принадлежность кластеру - транзитивное замыкание этих связей
// Компоненты вычисляются через систему непересекающихся множеств (union-find)
type ClusterBuilder struct{}

// NewClusterBuilder создает новый построитель кластеров
func NewClusterBuilder() *ClusterBuilder {
	return &ClusterBuilder{}
}

// Build разбивает записи на кластеры
// Гарантии: каждая запись попадает ровно в один кластер; записи с пустой
// меткой получают собственные кластеры-одиночки; идентификаторы кластеров
// имеют вид cluster_<n>, где n присваивается по возрастанию минимального
// ключа уникальности компоненты, что делает их воспроизводимыми между запусками
func (cb *ClusterBuilder) Build(members []ClusterMember, pairs []LabelPair) map[int]ClusterAssignment {
	// Узел на каждую различную непустую метку, плюс узел на каждую
	// запись без метки
	labelNode := make(map[string]int)
	nodeOfMember := make([]int, len(members))
	nodes := 0

	for i, member := range members {
		if member.Label == "" {
			nodeOfMember[i] = nodes
			nodes++
			continue
		}
		node, ok := labelNode[member.Label]
		if !ok {
			node = nodes
			labelNode[member.Label] = node
			nodes++
		}
		nodeOfMember[i] = node
	}

	uf := newUnionFind(nodes)

	// Прошедшая порог пара меток объединяет их группы записей
	for _, pair := range pairs {
		node1, ok1 := labelNode[pair.Label1]
		node2, ok2 := labelNode[pair.Label2]
		if ok1 && ok2 {
			uf.union(node1, node2)
		}
	}

	// Собираем компоненты и минимальный ключ каждой
	componentKeys := make(map[int][]int)
	componentMin := make(map[int]int)
	for i, member := range members {
		root := uf.find(nodeOfMember[i])
		componentKeys[root] = append(componentKeys[root], member.Key)
		if minKey, ok := componentMin[root]; !ok || member.Key < minKey {
			componentMin[root] = member.Key
		}
	}

	roots := make([]int, 0, len(componentKeys))
	for root := range componentKeys {
		roots = append(roots, root)
	}
	sort.Slice(roots, func(i, j int) bool {
		return componentMin[roots[i]] < componentMin[roots[j]]
	})

	assignments := make(map[int]ClusterAssignment, len(members))
	for n, root := range roots {
		clusterID := fmt.Sprintf("cluster_%d", n)
		size := len(componentKeys[root])
		for _, key := range componentKeys[root] {
			assignments[key] = ClusterAssignment{
				ClusterID: clusterID,
				Size:      size,
			}
		}
	}

	return assignments
}

// unionFind система непересекающихся множеств со сжатием путей
// и объединением по рангу
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]] // сжатие пути
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(x, y int) {
	rx, ry := uf.find(x), uf.find(y)
	if rx == ry {
		return
	}
	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
}
