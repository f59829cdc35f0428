package sunvox

import "fmt"

// Controller is one parameter of a module.
type Controller struct {
	module *Module
	num    int
}

func (c *Controller) Num() int        { return c.num }
func (c *Controller) Module() *Module { return c.module }

func (c *Controller) ids() (slot, mod int) { return c.module.slot.num, c.module.num }

func (c *Controller) b() Backend { return c.module.b() }

func (c *Controller) String() string {
	return fmt.Sprintf("Controller(%d, name=%q, value=%d)", c.num, c.Name(), c.Value())
}

func (c *Controller) Name() string {
	slot, mod := c.ids()
	return c.b().GetModuleCtlName(slot, mod, c.num)
}

// Value returns the real value, as shown in the module's own units.
func (c *Controller) Value() int { return c.get(ctlReal) }

// Scaled returns the value in the 0x0000..0x8000 pattern-event range.
func (c *Controller) Scaled() int { return c.get(ctlScaled) }

// Display returns the value as shown in the SunVox UI.
func (c *Controller) Display() int { return c.get(ctlDisplay) }

func (c *Controller) get(mode int) int {
	slot, mod := c.ids()
	return c.b().GetModuleCtlValue(slot, mod, c.num, mode)
}

// SetValue sets the real value. The change is applied on the next audio block.
func (c *Controller) SetValue(v int) error { return c.set(v, ctlReal) }

// SetScaled sets the value from the 0x0000..0x8000 range.
func (c *Controller) SetScaled(v int) error { return c.set(v, ctlScaled) }

func (c *Controller) set(v, mode int) error {
	return c.module.call("set_module_ctl_value", func(b Backend, slot, mod int) int {
		return b.SetModuleCtlValue(slot, mod, c.num, v, mode)
	})
}

func (c *Controller) Min() int {
	slot, mod := c.ids()
	return c.b().GetModuleCtlMin(slot, mod, c.num, ctlReal)
}

func (c *Controller) Max() int {
	slot, mod := c.ids()
	return c.b().GetModuleCtlMax(slot, mod, c.num, ctlReal)
}

// Offset is added to the real value to get the displayed one.
func (c *Controller) Offset() int {
	slot, mod := c.ids()
	return c.b().GetModuleCtlOffset(slot, mod, c.num)
}

// IsEnum reports whether the controller selects from named options.
func (c *Controller) IsEnum() bool {
	slot, mod := c.ids()
	return c.b().GetModuleCtlType(slot, mod, c.num) == 1
}

func (c *Controller) Group() int {
	slot, mod := c.ids()
	return c.b().GetModuleCtlGroup(slot, mod, c.num)
}

// Event returns a pattern event that sets this controller to a scaled value.
func (c *Controller) Event(scaled int) Note {
	return Note{
		Module: uint16(c.module.num + 1),
		Ctl:    uint16(c.num+1) << 8,
		CtlVal: uint16(scaled),
	}
}
