package chemlab

import "testing"

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"acid", CategoryAcid, false},
		{"acids", CategoryAcid, false},
		{"Base", CategoryBase, false},
		{" salts ", CategorySalt, false},
		{"gas", CategoryGas, false},
		{"gases", CategoryGas, false},
		{"indicator", CategoryIndicator, false},
		{"liquids", CategoryLiquid, false},
		{"solid", CategorySolid, false},
		{"ions", CategoryIon, false},
		{"unknown", CategoryUnknown, false},
		{"plasma", CategoryUnknown, true},
		{"", CategoryUnknown, true},
	}
	for _, tc := range cases {
		got, err := ParseCategory(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseCategory(%q): unexpected error state: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseCategory(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestCategorizeHeuristic(t *testing.T) {
	cases := []struct {
		name    string
		formula string
		want    Category
	}{
		{"Citric Acid", "C6H8O7", CategoryAcid},
		{"White Vinegar", "", CategoryAcid},
		{"Hydrochloric Acid", "HCl", CategoryAcid},
		{"Calcium Hydroxide", "Ca(OH)2", CategoryBase},
		{"Baking Soda", "NaHCO3", CategoryBase},
		{"Ammonia", "NH3", CategoryBase},
		{"Methyl Orange", "C14H14N3NaO3S", CategoryIndicator},
		{"Litmus", "", CategoryIndicator},
		{"Zinc", "Zn", CategorySolid},
		{"Copper", "Cu", CategorySolid},
		{"Chlorine", "Cl2", CategoryGas},
		{"Hydroxide Ion", "OH-", CategoryBase},
		{"Silver Nitrate", "AgNO3", CategorySalt},
	}
	for _, tc := range cases {
		if got := CategorizeHeuristic(tc.name, tc.formula); got != tc.want {
			t.Errorf("CategorizeHeuristic(%q, %q) = %s, want %s", tc.name, tc.formula, got, tc.want)
		}
	}
}
