// Package world defines the travel map: cities joined by roads.
// This package is PURE and must NOT import any infrastructure packages.
package world

import (
	"fmt"
	"math"
	"slices"
)

// Terrain classifies a city's surroundings.
type Terrain string

const (
	TerrainPlains   Terrain = "plains"
	TerrainDesert   Terrain = "desert"
	TerrainMountain Terrain = "mountain"
	TerrainForest   Terrain = "forest"
	TerrainHills    Terrain = "hills"
	TerrainSwamp    Terrain = "swamp"
	TerrainWater    Terrain = "water"
)

// Coordinate is a position in world units, the same unit as speeds.
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// City is a node of the map.
type City struct {
	Name      string     `json:"name"`
	Coord     Coordinate `json:"coord"`
	Terrain   Terrain    `json:"terrain"`
	Neighbors []string   `json:"neighbors"`
}

// Graph is an undirected road network keyed by city name.
type Graph struct {
	Cities map[string]*City `json:"cities"`
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{Cities: make(map[string]*City)}
}

// AddCity inserts or replaces a city.
func (g *Graph) AddCity(name string, x, y float64, terrain Terrain, neighbors ...string) {
	g.Cities[name] = &City{
		Name:      name,
		Coord:     Coordinate{X: x, Y: y},
		Terrain:   terrain,
		Neighbors: neighbors,
	}
}

// Symmetrize makes every road two-way.
func (g *Graph) Symmetrize() {
	for name, c := range g.Cities {
		for _, n := range c.Neighbors {
			other, ok := g.Cities[n]
			if ok && !slices.Contains(other.Neighbors, name) {
				other.Neighbors = append(other.Neighbors, name)
			}
		}
	}
}

// NeighborsOf returns a copy of the neighbor list; nil for unknown cities.
func (g *Graph) NeighborsOf(name string) []string {
	c, ok := g.Cities[name]
	if !ok {
		return nil
	}
	return slices.Clone(c.Neighbors)
}

// Connected reports whether a road joins a and b.
func (g *Graph) Connected(a, b string) bool {
	c, ok := g.Cities[a]
	return ok && slices.Contains(c.Neighbors, b)
}

// Distance is the straight-line distance between two cities.
func (g *Graph) Distance(a, b string) (float64, error) {
	ca, okA := g.Cities[a]
	cb, okB := g.Cities[b]
	if !okA || !okB {
		return 0, fmt.Errorf("unknown city in %q -> %q", a, b)
	}
	return math.Hypot(ca.Coord.X-cb.Coord.X, ca.Coord.Y-cb.Coord.Y), nil
}

// DefaultStart is where a new party begins.
const DefaultStart = "Capital"

// DefaultMap returns the built-in six-city map. One coordinate unit is 100
// world units so a walking party needs a dozen or so ticks per road.
func DefaultMap() *Graph {
	const scale = 100
	g := NewGraph()
	g.AddCity("Capital", 0*scale, 0*scale, TerrainPlains, "Harbor", "Farmland")
	g.AddCity("Harbor", 10*scale, -2*scale, TerrainWater, "Capital", "ForestGate")
	g.AddCity("Farmland", -4*scale, 3*scale, TerrainPlains, "Capital", "Oasis")
	g.AddCity("Oasis", -16*scale, 6*scale, TerrainDesert, "Farmland", "MountPass")
	g.AddCity("MountPass", -6*scale, 14*scale, TerrainMountain, "Oasis", "ForestGate")
	g.AddCity("ForestGate", 4*scale, 8*scale, TerrainForest, "MountPass", "Harbor")
	g.Symmetrize()
	return g
}
