// Package dsl builds jsonmap type descriptors from plain Go accessors.
//
// Overview
//   - Scalars: Bool/Int/Uint/Float/String cover named scalar types via type
//     parameters; Char, Time and TimeLayout cover runes and date-likes.
//   - Enum: declare symbolic constants in order with C(name, value).
//   - Containers: SliceOf/SetOf/MapOf/OrderedMapOf compose element and key
//     descriptors.
//   - Composites: Struct[S] with one Field per member; field options control
//     wire names, direction and per-field adapters.
//   - Scalar construction: ScalarCtor and Factory attach alternative
//     construction strategies tried when a composite target meets a scalar
//     source.
//
// Every builder captures statically typed closures, so the engine never
// reflects over struct layout. Methods cannot carry type parameters, which is
// why Field is a free function rather than a chained builder step.
//
// Example
//
//	type User struct {
//		ID    string
//		Email string
//	}
//
//	var userDesc = dsl.Struct[User](
//		dsl.Field("ID", dsl.String[string](),
//			func(u User) string { return u.ID },
//			func(u *User, v string) { u.ID = v },
//			dsl.Name("id")),
//		dsl.Field("Email", dsl.String[string](),
//			func(u User) string { return u.Email },
//			func(u *User, v string) { u.Email = v }),
//	)
package dsl
