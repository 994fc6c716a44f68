package geom

// BaseUnitsPerMM converts the automation layer's millimeters into the
// kernel's base length unit (meters). The factor is fixed for every call
// site crossing the kernel boundary, independent of geometry type.
const BaseUnitsPerMM = 0.001

// MMToBase converts one millimeter scalar to kernel base units.
func MMToBase(mm float64) float64 {
	return mm * BaseUnitsPerMM
}

// BaseToMM converts one kernel base-unit scalar back to millimeters.
func BaseToMM(base float64) float64 {
	return base / BaseUnitsPerMM
}

// MMVecToBase converts a millimeter point to kernel base units.
func MMVecToBase(mm Vec3) Vec3 {
	return mm.Scale(BaseUnitsPerMM)
}

// BaseVecToMM converts a kernel base-unit point back to millimeters.
func BaseVecToMM(base Vec3) Vec3 {
	return base.Scale(1 / BaseUnitsPerMM)
}

// MMBoxToBase converts a millimeter box to kernel base units.
func MMBoxToBase(mm Box3) Box3 {
	return Box3{Min: MMVecToBase(mm.Min), Max: MMVecToBase(mm.Max)}
}

// BaseBoxToMM converts a kernel base-unit box back to millimeters.
func BaseBoxToMM(base Box3) Box3 {
	return Box3{Min: BaseVecToMM(base.Min), Max: BaseVecToMM(base.Max)}
}
