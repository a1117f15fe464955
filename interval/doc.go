/*Package interval implements a hierarchical genome-binning index over
  BED/GFF/VCF records, supporting existence, count, and enumeration overlap
  queries with optional strand enforcement and a minimum overlap-fraction
  threshold.
  (Note that, unlike an interval union, every record is kept distinct in
  file order; overlapping records are never merged.)
  Every position must fit in 29 bits (512Mbp), the span of the coarsest
  bin.
*/
package interval
