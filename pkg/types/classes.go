package types

import "slices"

// Known class names.
const (
	ClassBaseModel = "BaseModel"
	ClassUser      = "User"
	ClassState     = "State"
	ClassCity      = "City"
	ClassAmenity   = "Amenity"
	ClassPlace     = "Place"
	ClassReview    = "Review"
)

// Schema lists the attributes a class declares and their kinds. It drives
// update coercion only; declared attributes are not materialized on new
// instances.
type Schema map[string]Kind

// Class describes one entity type known to the registry.
type Class struct {
	Name   string
	Schema Schema
}

// Registry is the set of classes the table and console accept.
type Registry struct {
	order   []string
	classes map[string]Class
}

// NewRegistry builds a registry from the given classes, keeping their order
// for listings. A later class with a repeated name replaces the earlier one.
func NewRegistry(classes ...Class) *Registry {
	r := &Registry{classes: make(map[string]Class, len(classes))}
	for _, c := range classes {
		if _, ok := r.classes[c.Name]; !ok {
			r.order = append(r.order, c.Name)
		}
		r.classes[c.Name] = c
	}
	return r
}

// DefaultRegistry returns the standard classes: BaseModel, User, State,
// City, Amenity, Place, Review.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Class{Name: ClassBaseModel},
		Class{Name: ClassUser, Schema: Schema{
			"email":      KindString,
			"password":   KindString,
			"first_name": KindString,
			"last_name":  KindString,
		}},
		Class{Name: ClassState, Schema: Schema{
			"name": KindString,
		}},
		Class{Name: ClassCity, Schema: Schema{
			"state_id": KindString,
			"name":     KindString,
		}},
		Class{Name: ClassAmenity, Schema: Schema{
			"name": KindString,
		}},
		Class{Name: ClassPlace, Schema: Schema{
			"city_id":          KindString,
			"user_id":          KindString,
			"name":             KindString,
			"description":      KindString,
			"number_rooms":     KindInt,
			"number_bathrooms": KindInt,
			"max_guest":        KindInt,
			"price_by_night":   KindInt,
			"latitude":         KindFloat,
			"longitude":        KindFloat,
		}},
		Class{Name: ClassReview, Schema: Schema{
			"place_id": KindString,
			"user_id":  KindString,
			"text":     KindString,
		}},
	)
}

// Lookup returns the class registered under name.
func (r *Registry) Lookup(name string) (Class, bool) {
	c, ok := r.classes[name]
	return c, ok
}

// Has reports whether name is a registered class.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns the registered class names in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// AttributeKind returns the declared kind of attr on class, if any.
func (r *Registry) AttributeKind(className, attr string) (Kind, bool) {
	c, ok := r.Lookup(className)
	if !ok {
		return 0, false
	}
	k, ok := c.Schema[attr]
	return k, ok
}
