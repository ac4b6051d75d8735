package model

// Collider is a sphere attached to a WorldObject, centered on its position.
// Trigger colliders report contacts without blocking; the zombie attacks through one.
type Collider struct {
	owner   *WorldObject
	radius  float64
	trigger bool
	enabled bool
}

func newCollider(owner *WorldObject, radius float64, trigger bool) *Collider {
	return &Collider{
		owner:   owner,
		radius:  radius,
		trigger: trigger,
		enabled: true,
	}
}

// Owner returns the object the collider is attached to.
func (c *Collider) Owner() *WorldObject {
	return c.owner
}

// Radius returns sphere radius.
func (c *Collider) Radius() float64 {
	return c.radius
}

// IsTrigger reports whether the collider is a trigger volume.
func (c *Collider) IsTrigger() bool {
	return c.trigger
}

// Enabled reports whether the collider takes part in queries and contacts.
func (c *Collider) Enabled() bool {
	return c.enabled
}

// SetEnabled enables or disables the collider.
func (c *Collider) SetEnabled(enabled bool) {
	c.enabled = enabled
}

// Center returns the sphere center (owner position).
func (c *Collider) Center() Vec3 {
	return c.owner.Position()
}

// ClosestPoint returns the point on the collider surface closest to p.
// Points inside the sphere are returned unchanged.
func (c *Collider) ClosestPoint(p Vec3) Vec3 {
	center := c.Center()
	offset := p.Sub(center)
	if offset.LengthSquared() <= c.radius*c.radius {
		return p
	}
	return center.Add(offset.Normalize().Scale(c.radius))
}

// Overlaps reports whether two sphere colliders intersect.
func (c *Collider) Overlaps(other *Collider) bool {
	r := c.radius + other.radius
	return c.Center().DistanceSquared(other.Center()) <= r*r
}

// IntersectsSphere reports whether the collider intersects a query sphere.
func (c *Collider) IntersectsSphere(origin Vec3, radius float64) bool {
	r := c.radius + radius
	return c.Center().DistanceSquared(origin) <= r*r
}
