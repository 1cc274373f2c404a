// Package catalog fetches raw products from the remote catalog service and
// maps them onto the themed 3D-printing product set shown by the storefront.
//
// Mapping is pure: record i takes title and image from LookupTable[i%9] and
// its price is the raw price scaled by PriceMultiplier and rounded to a whole
// number. Results are never cached between page loads.
package catalog
