// See pointcloud.go for Point/BoundingBox/Cloud/ParsePCD and synth.go for
// the synthetic sphere/cube generators used to smoke-test the pipeline.
package pointcloud
