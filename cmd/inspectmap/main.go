package main

import (
	"fmt"
	"math"
	"os"
	"sort"

	"quake-map-flipper/internal/mapfile"
	"quake-map-flipper/internal/mathutil"
)

type report struct {
	entities   int
	brushes    int
	planes     int
	badPlanes  int
	unbalanced int
	classes    map[string]int
	min, max   mathutil.Vec3
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspectmap <file.map>")
		os.Exit(2)
	}
	path := os.Args[1]

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	r := report{
		classes: map[string]int{},
		min:     mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
		max:     mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}

	counted := false // current entity's classname already tallied
	err = mapfile.Scan(f, func(n int, line mapfile.Line, st *mapfile.State) error {
		switch line.Kind {
		case mapfile.KindBraceOpen:
			switch line.Depth {
			case 1:
				r.entities++
				counted = false
			case 2:
				r.brushes++
			}
		case mapfile.KindBraceClose:
			if line.Unbalanced {
				r.unbalanced++
			}
		case mapfile.KindProperty:
			if line.Property.Key == mapfile.KeyClassname && !counted {
				r.classes[st.Classname]++
				counted = true
			}
		case mapfile.KindPlane:
			if line.Err != nil {
				r.badPlanes++
				fmt.Printf("  line %d: %v\n", n, line.Err)
				return nil
			}
			r.planes++
			for _, p := range line.Plane.Points {
				r.min = r.min.Min(p)
				r.max = r.max.Max(p)
			}
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Entities: %d, Brushes: %d, Planes: %d\n", r.entities, r.brushes, r.planes)
	if r.badPlanes > 0 {
		fmt.Printf("Unparseable planes: %d\n", r.badPlanes)
	}
	if r.unbalanced > 0 {
		fmt.Printf("Unbalanced closing braces: %d\n", r.unbalanced)
	}
	if r.planes > 0 {
		fmt.Printf("BBox: X[%.1f, %.1f] Y[%.1f, %.1f] Z[%.1f, %.1f]\n",
			r.min[0], r.max[0], r.min[1], r.max[1], r.min[2], r.max[2])
	}

	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if r.classes[names[i]] != r.classes[names[j]] {
			return r.classes[names[i]] > r.classes[names[j]]
		}
		return names[i] < names[j]
	})

	fmt.Println("--- Classnames ---")
	for _, name := range names {
		fmt.Printf("  %-28s %d\n", name, r.classes[name])
	}
}
