package skills

// Catalog is an ordered, name-unique collection of skills. Entries keep the
// position at which their name first appeared, even when a later source
// overwrites their value.
type Catalog struct {
	order   []string
	records map[string]*Skill
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		records: make(map[string]*Skill),
	}
}

// Upsert adds a skill to the catalog. A new name is appended after all
// existing entries; an existing name has its record replaced in place.
func (c *Catalog) Upsert(skill *Skill) {
	if _, exists := c.records[skill.Name]; !exists {
		c.order = append(c.order, skill.Name)
	}
	c.records[skill.Name] = skill
}

// Get returns the skill registered under name
func (c *Catalog) Get(name string) (*Skill, bool) {
	skill, ok := c.records[name]
	return skill, ok
}

// Records returns all skills in first-insertion order
func (c *Catalog) Records() []*Skill {
	records := make([]*Skill, 0, len(c.order))
	for _, name := range c.order {
		records = append(records, c.records[name])
	}
	return records
}

// Names returns all skill names in first-insertion order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Len returns the number of skills in the catalog
func (c *Catalog) Len() int {
	return len(c.order)
}
