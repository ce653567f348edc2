package ecs

import "github.com/milk9111/tilemotion/ecs/component"

// smallest returns the ids of the smallest store so intersections iterate
// as little as possible.
func smallest(sets ...store) []entityID {
	var best store
	for _, s := range sets {
		if best == nil || s.size() < best.size() {
			best = s
		}
	}
	if best == nil {
		return nil
	}
	return best.ids()
}

func hasAll(id entityID, sets ...store) bool {
	for _, s := range sets {
		if !s.has(id) {
			return false
		}
	}
	return true
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, sb := storeFor(w, ka, false), storeFor(w, kb, false)
	if sa == nil || sb == nil {
		return
	}
	for _, id := range smallest(sa, sb) {
		e, ok := w.entities.current(id)
		if !ok || !hasAll(id, sa, sb) {
			continue
		}
		fn(e, sa.Get(id), sb.Get(id))
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa, sb, sc := storeFor(w, ka, false), storeFor(w, kb, false), storeFor(w, kc, false)
	if sa == nil || sb == nil || sc == nil {
		return
	}
	for _, id := range smallest(sa, sb, sc) {
		e, ok := w.entities.current(id)
		if !ok || !hasAll(id, sa, sb, sc) {
			continue
		}
		fn(e, sa.Get(id), sb.Get(id), sc.Get(id))
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	sa, sb, sc, sd := storeFor(w, ka, false), storeFor(w, kb, false), storeFor(w, kc, false), storeFor(w, kd, false)
	if sa == nil || sb == nil || sc == nil || sd == nil {
		return
	}
	for _, id := range smallest(sa, sb, sc, sd) {
		e, ok := w.entities.current(id)
		if !ok || !hasAll(id, sa, sb, sc, sd) {
			continue
		}
		fn(e, sa.Get(id), sb.Get(id), sc.Get(id), sd.Get(id))
	}
}
