package geometry

import "github.com/df07/go-diffuse-raytracer/pkg/core"

// HittableList is an ordered collection of hittables that reports the
// nearest intersection among its members.
type HittableList struct {
	objects []Hittable
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	list := &HittableList{objects: make([]Hittable, 0, len(objects))}
	for _, obj := range objects {
		list.Add(obj)
	}
	return list
}

// Add appends an object and returns the list so calls can be chained.
// nil objects are ignored.
func (l *HittableList) Add(object Hittable) *HittableList {
	if object != nil {
		l.objects = append(l.objects, object)
	}
	return l
}

// Len returns the number of objects in the list
func (l *HittableList) Len() int {
	return len(l.objects)
}

// Objects returns a copy of the list members in insertion order
func (l *HittableList) Objects() []Hittable {
	out := make([]Hittable, len(l.objects))
	copy(out, l.objects)
	return out
}

// Hit returns the closest intersection among all members within rayT
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval) (*HitRecord, bool) {
	var closestHit *HitRecord
	closestSoFar := rayT.Max

	for _, object := range l.objects {
		if hit, isHit := object.Hit(ray, rayT.WithMax(closestSoFar)); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
